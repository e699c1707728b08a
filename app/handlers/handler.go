package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"

	"github.com/trinetrasoft/cloud-kitchen/app/helpers"
	"github.com/trinetrasoft/cloud-kitchen/app/services"
	"github.com/trinetrasoft/cloud-kitchen/app/services/auth"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidItem),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTier),
		errors.Is(err, helpers.ErrEmptyBody),
		errors.Is(err, helpers.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrKitchenNotFound),
		errors.Is(err, services.ErrMenuItemNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadySubscribed):
		return http.StatusConflict
	case errors.Is(err, services.ErrPaymentUnavailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(rnd *render.Render, w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zap.S().Errorf("%s %s: %v", r.Method, r.URL.Path, err)
		_ = rnd.JSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	_ = rnd.JSON(w, status, errorResponse{Error: err.Error()})
}

// decodeAndValidate fills dst from the JSON body and runs struct validation.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate(rnd *render.Render, v *validator.Validate, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := helpers.DecodeJSON(r, dst); err != nil {
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	if err := v.Struct(dst); err != nil {
		writeValidationError(rnd, w, err)
		return false
	}
	return true
}

func writeValidationError(rnd *render.Render, w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		_ = rnd.JSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  "validation failed",
			Fields: helpers.FormatValidationErrors(verrs),
		})
		return
	}
	_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
