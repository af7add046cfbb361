package curatorauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eliteconnections/backend/internal/pkg/security"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrCodeInvalid = errors.New("one-time code rejected")
)

type SecretStore interface {
	SetTOTPSecret(ctx context.Context, userID int64, secret string) error
}

// Service handles authenticator enrollment for the curator surface. The
// secret is persisted only after the curator proves possession of it.
type Service struct {
	secrets SecretStore
	issuer  string
	now     func() time.Time
}

type Enrollment struct {
	Secret    string `json:"secret"`
	OTPURL    string `json:"otp_url"`
	QRDataURL string `json:"qr_data_url"`
}

func NewService(secrets SecretStore, issuer string) *Service {
	if strings.TrimSpace(issuer) == "" {
		issuer = "EliteConnections"
	}

	return &Service{
		secrets: secrets,
		issuer:  issuer,
		now:     time.Now,
	}
}

// BeginEnrollment generates a fresh secret and the QR payload for the
// authenticator app. Nothing is stored yet.
func (s *Service) BeginEnrollment(ctx context.Context, username string) (Enrollment, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Enrollment{}, fmt.Errorf("username is required: %w", ErrValidation)
	}

	secret, otpURL, err := security.GenerateTOTPSecret(s.issuer, username)
	if err != nil {
		return Enrollment{}, fmt.Errorf("generate totp secret: %w", err)
	}

	qr, err := security.MakeQRCodeDataURL(otpURL, 256)
	if err != nil {
		return Enrollment{}, fmt.Errorf("render enrollment qr: %w", err)
	}

	return Enrollment{Secret: secret, OTPURL: otpURL, QRDataURL: qr}, nil
}

// ConfirmEnrollment validates the first code against the candidate secret
// and persists it, turning the second factor on for future logins.
func (s *Service) ConfirmEnrollment(ctx context.Context, userID int64, secret, code string) error {
	if userID <= 0 || strings.TrimSpace(secret) == "" {
		return fmt.Errorf("invalid enrollment payload: %w", ErrValidation)
	}
	if s.secrets == nil {
		return fmt.Errorf("secret store is nil")
	}

	if !security.ValidateTOTP(secret, code, s.now()) {
		return ErrCodeInvalid
	}

	if err := s.secrets.SetTOTPSecret(ctx, userID, secret); err != nil {
		return fmt.Errorf("persist totp secret: %w", err)
	}

	return nil
}
