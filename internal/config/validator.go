package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

func NewValidator(cfg *AppConfig) *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("afrilance_email", validateEmailDomain(cfg.AdminEmailDomain))
	_ = v.RegisterValidation("not_blank", validateNotBlank)
	return v
}

func validateEmailDomain(domain string) validator.Func {
	suffix := "@" + strings.ToLower(strings.TrimPrefix(domain, "@"))
	return func(fl validator.FieldLevel) bool {
		email := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		return len(email) > len(suffix) && strings.HasSuffix(email, suffix)
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
