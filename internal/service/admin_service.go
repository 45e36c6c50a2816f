package service

import (
	"AfrilanceWeb/internal/constant"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/metrics"
	"AfrilanceWeb/internal/model"
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

type AdminAPI interface {
	AdminLogin(ctx context.Context, req model.AdminLoginRequest) (*model.AdminLoginAPIResponse, error)
	RequestAdminRegistration(ctx context.Context, req model.AdminRegistrationRequest) (*model.AdminRegistrationResponse, error)
}

type AdminService struct {
	api       AdminAPI
	sessions  *SessionService
	validator *validator.Validate
}

func NewAdminService(api AdminAPI, sessions *SessionService, validator *validator.Validate) *AdminService {
	return &AdminService{
		api:       api,
		sessions:  sessions,
		validator: validator,
	}
}

// Login checks the credentials locally first; only an address on the
// Afrilance staff domain is ever sent to the marketplace API.
func (s *AdminService) Login(ctx context.Context, req model.AdminLoginRequest) (*model.Session, *model.AdminLoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		metrics.RecordAdminLogin("rejected")
		return nil, nil, validationFailure(err, "Only Afrilance staff emails can sign in")
	}

	resp, err := s.api.AdminLogin(ctx, req)
	if err != nil {
		slog.Warn("Admin login rejected", "error", err, "email", req.Email)
		metrics.RecordAdminLogin("failed")
		return nil, nil, apiFailure(err)
	}

	userID := resp.User.ID
	if userID == "" {
		if claims, err := helper.ParseTokenClaims(resp.AccessToken); err == nil {
			userID = claims.Subject()
		}
	}

	session, err := s.sessions.create(ctx, resp.AccessToken, userID, constant.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordAdminLogin("ok")
	return session, &model.AdminLoginResponse{
		SessionID: session.ID,
		User:      resp.User,
	}, nil
}

func (s *AdminService) RequestRegistration(ctx context.Context, req model.AdminRegistrationRequest) (*model.AdminRegistrationResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, validationFailure(err, "Registration requests require an Afrilance staff email")
	}

	resp, err := s.api.RequestAdminRegistration(ctx, req)
	if err != nil {
		slog.Warn("Admin registration request rejected", "error", err, "email", req.Email)
		return nil, apiFailure(err)
	}

	if resp.Message == "" {
		resp.Message = "Registration request submitted"
	}
	return resp, nil
}

// validationFailure names the staff-domain rule when that is what failed.
func validationFailure(err error, domainMessage string) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "afrilance_email" {
				return helper.NewBadRequestError(domainMessage)
			}
		}
	}
	return helper.NewBadRequestError("")
}
