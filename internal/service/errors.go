package service

import (
	"AfrilanceWeb/internal/adapter"
	"AfrilanceWeb/internal/helper"
	"errors"
	"net/http"
)

// apiFailure maps a marketplace API failure onto the error returned to the
// browser, keeping the backend's detail as the message.
func apiFailure(err error) error {
	var appErr *helper.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	message := adapter.UserMessage(err)

	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return helper.NewAppError(apiErr.Status, message)
	}
	return helper.NewAppError(http.StatusBadGateway, message)
}
