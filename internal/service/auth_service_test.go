package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mentorhub_backend/internal/config"
	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/repository"
	"mentorhub_backend/internal/util"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789-0123456789-0123456789"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), nil, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Password:  "correcthorse",
		Role:      model.Student,
	}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Password == "correcthorse" {
		t.Fatal("password stored in plaintext")
	}
	if user.WeeklyGoal != 3 {
		t.Errorf("weeklyGoal = %d, want default 3", user.WeeklyGoal)
	}

	token, loggedIn, err := svc.Login("ana@example.com", "correcthorse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in as user %d, want %d", loggedIn.ID, user.ID)
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Errorf("claims = %+v, want user %d with student role", claims, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first := &model.User{FirstName: "Ana", Email: "ana@example.com", Password: "correcthorse", Role: model.Student}
	if err := svc.Register(first); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	second := &model.User{FirstName: "Other", Email: "ana@example.com", Password: "batterystaple", Role: model.Mentor}
	if err := svc.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{FirstName: "Ana", Email: "ana@example.com", Password: "correcthorse", Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login("ana@example.com", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "correcthorse"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user := &model.User{FirstName: "Ana", Email: "ana@example.com", Password: "correcthorse", Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, _, err := svc.Login("ana@example.com", "correcthorse")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if svc.IsTokenRevoked(ctx, token) {
		t.Fatal("fresh token reported revoked")
	}
	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !svc.IsTokenRevoked(ctx, token) {
		t.Fatal("token still valid after logout")
	}
}

func TestResetPasswordFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user := &model.User{FirstName: "Ana", Email: "ana@example.com", Password: "correcthorse", Role: model.Student}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Unknown emails succeed silently so the endpoint reveals nothing.
	if err := svc.ForgotPassword(ctx, "nobody@example.com"); err != nil {
		t.Fatalf("forgot password for unknown email errored: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	// Without a mailer the token is only logged; fish it out of the
	// in-process store.
	var token string
	svc.mu.Lock()
	for key := range svc.localTokens {
		if strings.HasPrefix(key, resetTokenPrefix) {
			token = strings.TrimPrefix(key, resetTokenPrefix)
		}
	}
	svc.mu.Unlock()
	if token == "" {
		t.Fatal("no reset token issued")
	}

	if err := svc.ResetPassword(ctx, token, "batterystaple"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, _, err := svc.Login("ana@example.com", "correcthorse"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatal("old password still works after reset")
	}
	if _, _, err := svc.Login("ana@example.com", "batterystaple"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// Tokens are single-use.
	if err := svc.ResetPassword(ctx, token, "thirdpassword"); !errors.Is(err, util.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}

	// And garbage tokens never pass.
	if err := svc.ResetPassword(ctx, "not-a-token", "whatever"); !errors.Is(err, util.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}
