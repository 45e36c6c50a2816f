package controller

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/model"
	"AfrilanceWeb/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"
)

type AdminController struct {
	adminService *service.AdminService
	cfg          *config.AppConfig
}

func NewAdminController(adminService *service.AdminService, cfg *config.AppConfig) *AdminController {
	return &AdminController{
		adminService: adminService,
		cfg:          cfg,
	}
}

// Login godoc
// @Summary      Admin Login
// @Description  Sign in with an Afrilance staff email. Emails outside the staff domain are rejected before the marketplace API is contacted.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body model.AdminLoginRequest true "Admin Login Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.AdminLoginResponse}
// @Failure      400  {object}  helper.ResponseError
// @Failure      401  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Router       /api/admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req model.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	session, resp, err := c.adminService.Login(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	setSessionCookie(w, c.cfg, session)
	helper.WriteSuccess(w, resp)
}

// RegistrationRequest godoc
// @Summary      Request Admin Access
// @Description  Submit a request for an admin account. Only staff emails are accepted.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body model.AdminRegistrationRequest true "Admin Registration Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.AdminRegistrationResponse}
// @Failure      400  {object}  helper.ResponseError
// @Failure      429  {object}  helper.ResponseError
// @Failure      502  {object}  helper.ResponseError
// @Router       /api/admin/registration-requests [post]
func (c *AdminController) RegistrationRequest(w http.ResponseWriter, r *http.Request) {
	var req model.AdminRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.adminService.RequestRegistration(r.Context(), req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// Me godoc
// @Summary      Current Admin
// @Description  Return the admin session bound to the request
// @Tags         admin
// @Produce      json
// @Success      200  {object}  helper.ResponseSuccess{data=model.SessionResponse}
// @Failure      401  {object}  helper.ResponseError
// @Failure      403  {object}  helper.ResponseError
// @Security     SessionAuth
// @Router       /api/admin/me [get]
func (c *AdminController) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := helper.SessionFromContext(r.Context())
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	helper.WriteSuccess(w, service.ToSessionResponse(session))
}
