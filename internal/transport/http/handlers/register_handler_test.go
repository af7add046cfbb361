package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	registersvc "github.com/eliteconnections/backend/internal/services/register"
	"github.com/eliteconnections/backend/internal/transport/http/dto"
	httperrors "github.com/eliteconnections/backend/internal/transport/http/errors"
)

type userCreatorStub struct {
	takenEmails map[string]bool
	nextID      int64
}

func (s *userCreatorStub) CreateWithProfile(_ context.Context, username, email, passwordHash string) (model.User, error) {
	if s.takenEmails[email] {
		return model.User{}, registersvc.ErrEmailTaken
	}
	s.nextID++
	return model.User{
		ID:        s.nextID,
		Username:  username,
		Email:     email,
		Role:      enums.RoleMember,
		CreatedAt: time.Now(),
	}, nil
}

func TestRegisterCreatesMember(t *testing.T) {
	handler := NewRegisterHandler(registersvc.NewService(&userCreatorStub{}))

	body := `{"username":"victoria","email":"Victoria@Example.com","password":"orchid-garden-77","password_confirm":"orchid-garden-77"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got %d want %d, body %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var payload dto.RegisterResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Email != "victoria@example.com" {
		t.Fatalf("email must be lowercased, got %q", payload.Email)
	}
	if payload.Role != "member" {
		t.Fatalf("unexpected role: %q", payload.Role)
	}
}

func TestRegisterReportsTakenEmailAsFieldError(t *testing.T) {
	handler := NewRegisterHandler(registersvc.NewService(&userCreatorStub{
		takenEmails: map[string]bool{"victoria@example.com": true},
	}))

	body := `{"username":"victoria","email":"victoria@example.com","password":"orchid-garden-77","password_confirm":"orchid-garden-77"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusConflict)
	}

	var payload httperrors.FieldError
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "EMAIL_TAKEN" || payload.Field != "email" {
		t.Fatalf("unexpected error payload: %+v", payload)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	handler := NewRegisterHandler(registersvc.NewService(&userCreatorStub{}))

	body := `{"username":"victoria","email":"victoria@example.com","password":"short","password_confirm":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}

	var payload httperrors.FieldError
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Field != "password" || payload.Message == "" {
		t.Fatalf("unexpected error payload: %+v", payload)
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	handler := NewRegisterHandler(registersvc.NewService(&userCreatorStub{}))

	body := `{"username":"victoria","email":"victoria@example.com","password":"orchid-garden-77","password_confirm":"orchid-garden-78"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	rr := httptest.NewRecorder()

	handler.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}

	var payload httperrors.FieldError
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "VALIDATION_ERROR" || payload.Field != "password_confirm" {
		t.Fatalf("unexpected error payload: %+v", payload)
	}
}
