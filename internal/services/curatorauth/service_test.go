package curatorauth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	curatorauthsvc "github.com/eliteconnections/backend/internal/services/curatorauth"
)

type secretStoreFake struct {
	stored map[int64]string
}

func (f *secretStoreFake) SetTOTPSecret(_ context.Context, userID int64, secret string) error {
	f.stored[userID] = secret
	return nil
}

func TestEnrollmentRoundTrip(t *testing.T) {
	store := &secretStoreFake{stored: make(map[int64]string)}
	svc := curatorauthsvc.NewService(store, "EliteConnections")

	ctx := context.Background()
	enrollment, err := svc.BeginEnrollment(ctx, "curator_anne")
	if err != nil {
		t.Fatalf("begin enrollment: %v", err)
	}
	if enrollment.Secret == "" || !strings.HasPrefix(enrollment.QRDataURL, "data:image/png;base64,") {
		t.Fatalf("incomplete enrollment: %+v", enrollment)
	}
	if !strings.Contains(enrollment.OTPURL, "curator_anne") {
		t.Fatalf("otp url missing account: %q", enrollment.OTPURL)
	}

	// Wrong code does not persist anything.
	if err := svc.ConfirmEnrollment(ctx, 42, enrollment.Secret, "000000"); !errors.Is(err, curatorauthsvc.ErrCodeInvalid) {
		t.Fatalf("bad code: got %v", err)
	}
	if len(store.stored) != 0 {
		t.Fatalf("secret stored despite bad code")
	}

	code, err := totp.GenerateCodeCustom(enrollment.Secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := svc.ConfirmEnrollment(ctx, 42, enrollment.Secret, code); err != nil {
		t.Fatalf("confirm enrollment: %v", err)
	}
	if store.stored[42] != enrollment.Secret {
		t.Fatalf("secret not persisted")
	}
}
