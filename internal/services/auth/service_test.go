package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/eliteconnections/backend/internal/pkg/security"
	redrepo "github.com/eliteconnections/backend/internal/repo/redis"
	authsvc "github.com/eliteconnections/backend/internal/services/auth"
)

type credentialStoreStub struct {
	creds map[string]authsvc.Credentials
}

func (s credentialStoreStub) GetCredentials(_ context.Context, username string) (authsvc.Credentials, error) {
	creds, ok := s.creds[username]
	if !ok {
		return authsvc.Credentials{}, authsvc.ErrInvalidCredentials
	}
	return creds, nil
}

func TestLoginWithPassword(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	res, err := svc.Login(ctx, "victoria", "orchid-garden-77", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Me.ID != 1001 || res.Me.Role != "member" {
		t.Fatalf("unexpected identity: %+v", res.Me)
	}

	if _, err := svc.ValidateAccessToken(ctx, res.AccessToken); err != nil {
		t.Fatalf("validate access token: %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Login(ctx, "victoria", "wrong-password", ""); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("wrong password should be rejected, got err=%v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "orchid-garden-77", ""); !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("unknown user should be rejected, got err=%v", err)
	}
}

func TestLoginCuratorRequiresTOTP(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Login(ctx, "curator_anne", "velvet-rope-12", ""); !errors.Is(err, authsvc.ErrTOTPRequired) {
		t.Fatalf("staff login without code should require totp, got err=%v", err)
	}
	if _, err := svc.Login(ctx, "curator_anne", "velvet-rope-12", "000000"); !errors.Is(err, authsvc.ErrTOTPInvalid) {
		t.Fatalf("bad code should be rejected, got err=%v", err)
	}

	code, err := totp.GenerateCodeCustom(curatorTOTPSecret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		t.Fatalf("generate totp code: %v", err)
	}

	res, err := svc.Login(ctx, "curator_anne", "velvet-rope-12", code)
	if err != nil {
		t.Fatalf("login with valid code: %v", err)
	}
	if res.Me.Role != "curator" {
		t.Fatalf("unexpected role %q", res.Me.Role)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Login(ctx, "victoria", "orchid-garden-77", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshRes, err := svc.Refresh(ctx, loginRes.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if refreshRes.RefreshToken == loginRes.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	if _, err := svc.Refresh(ctx, loginRes.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("old refresh token should be unauthorized, got err=%v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, refreshRes.AccessToken); err != nil {
		t.Fatalf("new access token validation failed: %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	ctx := context.Background()
	loginRes, err := svc.Login(ctx, "victoria", "orchid-garden-77", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken)
	if err != nil {
		t.Fatalf("validate access token before logout: %v", err)
	}

	if err := svc.Logout(ctx, claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.ValidateAccessToken(ctx, loginRes.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("access token should be unauthorized after logout, got err=%v", err)
	}
}

const curatorTOTPSecret = "JBSWY3DPEHPK3PXP"

func newAuthServiceForTest(t *testing.T) (*authsvc.Service, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	repo := redrepo.NewSessionRepo(client)
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := authsvc.NewService(jwtManager, repo, 30*24*time.Hour)

	memberHash, err := security.HashPassword("orchid-garden-77")
	if err != nil {
		t.Fatalf("hash member password: %v", err)
	}
	curatorHash, err := security.HashPassword("velvet-rope-12")
	if err != nil {
		t.Fatalf("hash curator password: %v", err)
	}

	svc.AttachCredentials(credentialStoreStub{creds: map[string]authsvc.Credentials{
		"victoria": {
			UserID:       1001,
			Username:     "victoria",
			PasswordHash: memberHash,
			Role:         "member",
		},
		"curator_anne": {
			UserID:       42,
			Username:     "curator_anne",
			PasswordHash: curatorHash,
			Role:         "curator",
			TOTPSecret:   curatorTOTPSecret,
		},
	}})

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return svc, cleanup
}
