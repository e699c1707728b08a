package helpers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Quantity int `json:"quantity"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity": 3}`))
	if err := DecodeJSON(r, &dst); err != nil || dst.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d (%v)", dst.Quantity, err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	if err := DecodeJSON(r, &dst); !errors.Is(err, ErrEmptyBody) {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity": "three"}`))
	if err := DecodeJSON(r, &dst); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("expected ErrInvalidBody for a mistyped field, got %v", err)
	}
}

func TestUserContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUserIDFromContext(r.Context()) != "" {
		t.Errorf("expected no user")
	}
	ctx := WithUser(r.Context(), &models.User{ID: "u1"})
	if GetUserIDFromContext(ctx) != "u1" {
		t.Errorf("expected u1")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	type payload struct {
		MenuItemID string `validate:"required"`
		Quantity   int    `validate:"gt=0"`
	}
	err := validator.New().Struct(payload{Quantity: 0})

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	msgs := FormatValidationErrors(verrs)
	if msgs["menuItemID"] != "MenuItemID is required." {
		t.Errorf("unexpected message %q", msgs["menuItemID"])
	}
	if msgs["quantity"] != "Quantity must be greater than 0." {
		t.Errorf("unexpected message %q", msgs["quantity"])
	}
}
