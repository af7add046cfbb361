package register_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/eliteconnections/backend/internal/domain/enums"
	"github.com/eliteconnections/backend/internal/domain/model"
	registersvc "github.com/eliteconnections/backend/internal/services/register"
)

type userCreatorStub struct {
	err      error
	lastHash string
	lastName string
	lastMail string
}

func (s *userCreatorStub) CreateWithProfile(_ context.Context, username, email, passwordHash string) (model.User, error) {
	if s.err != nil {
		return model.User{}, s.err
	}
	s.lastName = username
	s.lastMail = email
	s.lastHash = passwordHash
	return model.User{ID: 501, Username: username, Email: email, Role: enums.RoleMember}, nil
}

func TestRegisterHashesPasswordAndLowercasesEmail(t *testing.T) {
	store := &userCreatorStub{}
	svc := registersvc.NewService(store)

	user, err := svc.Register(context.Background(), registersvc.Input{
		Username:        "sebastian",
		Email:           "Sebastian@Example.COM",
		Password:        "long-enough-passphrase",
		PasswordConfirm: "long-enough-passphrase",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != 501 || user.Role != enums.RoleMember {
		t.Fatalf("unexpected user: %+v", user)
	}
	if store.lastMail != "sebastian@example.com" {
		t.Fatalf("email not lowercased: %q", store.lastMail)
	}
	if store.lastHash == "long-enough-passphrase" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.lastHash), []byte("long-enough-passphrase")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := registersvc.NewService(&userCreatorStub{})

	cases := []struct {
		name  string
		input registersvc.Input
		field string
	}{
		{"short username", registersvc.Input{Username: "ab", Email: "a@b.com", Password: "12345678", PasswordConfirm: "12345678"}, "username"},
		{"bad username chars", registersvc.Input{Username: "bad name!", Email: "a@b.com", Password: "12345678", PasswordConfirm: "12345678"}, "username"},
		{"missing at sign", registersvc.Input{Username: "goodname", Email: "nothing", Password: "12345678", PasswordConfirm: "12345678"}, "email"},
		{"bare domain", registersvc.Input{Username: "goodname", Email: "a@nodot", Password: "12345678", PasswordConfirm: "12345678"}, "email"},
		{"short password", registersvc.Input{Username: "goodname", Email: "a@b.com", Password: "seven77", PasswordConfirm: "seven77"}, "password"},
		{"password mismatch", registersvc.Input{Username: "goodname", Email: "a@b.com", Password: "12345678", PasswordConfirm: "87654321"}, "password_confirm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			if !errors.Is(err, registersvc.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var vErr *registersvc.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, err)
			}
		})
	}
}

func TestRegisterPropagatesUniqueViolations(t *testing.T) {
	svc := registersvc.NewService(&userCreatorStub{err: registersvc.ErrEmailTaken})
	if _, err := svc.Register(context.Background(), registersvc.Input{
		Username:        "goodname",
		Email:           "taken@example.com",
		Password:        "12345678",
		PasswordConfirm: "12345678",
	}); !errors.Is(err, registersvc.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
