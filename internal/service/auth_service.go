package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"mentorhub_backend/internal/config"
	"mentorhub_backend/internal/model"
	"mentorhub_backend/internal/repository"
	"mentorhub_backend/internal/util"
	"mentorhub_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	resetTokenPrefix = "pwreset:"
	revokedPrefix    = "revoked:"
	resetTokenTTL    = time.Hour
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Cfg      *config.Config

	// In-process fallback when Redis is disabled (dev mode).
	mu          sync.Mutex
	localTokens map[string]localEntry
}

type localEntry struct {
	value   uint
	expires time.Time
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:    userRepo,
		Redis:       rdb,
		Cfg:         cfg,
		localTokens: make(map[string]localEntry),
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if user.WeeklyGoal == 0 {
		user.WeeklyGoal = 3
	}

	return s.UserRepo.Create(user)
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to stamp last login", zap.Uint("userID", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout blacklists the presented token until it would have expired, so a
// stolen cookie stops working immediately.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := util.ParseJWT(tokenString, s.Cfg.JWT.Secret)
	if err != nil {
		// Expired or garbage tokens need no revocation.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if s.Redis != nil {
		return s.Redis.Set(ctx, revokedPrefix+tokenString, claims.UserID, ttl).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.localTokens[revokedPrefix+tokenString] = localEntry{value: claims.UserID, expires: time.Now().Add(ttl)}
	return nil
}

// IsTokenRevoked is consulted by the auth middleware on every request.
func (s *AuthService) IsTokenRevoked(ctx context.Context, tokenString string) bool {
	if s.Redis != nil {
		_, err := s.Redis.Get(ctx, revokedPrefix+tokenString).Result()
		return err == nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.localTokens[revokedPrefix+tokenString]
	if !ok {
		return false
	}
	if time.Now().After(entry.expires) {
		delete(s.localTokens, revokedPrefix+tokenString)
		return false
	}
	return true
}

// ForgotPassword issues a one-hour reset token for the account. Without a
// mailer the token is only logged; unknown emails are not revealed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := uuid.New().String()
	if s.Redis != nil {
		if err := s.Redis.Set(ctx, resetTokenPrefix+token, user.ID, resetTokenTTL).Err(); err != nil {
			return err
		}
	} else {
		s.mu.Lock()
		s.localTokens[resetTokenPrefix+token] = localEntry{value: user.ID, expires: time.Now().Add(resetTokenTTL)}
		s.mu.Unlock()
	}

	logger.Log.Info("password reset token issued",
		zap.Uint("userID", user.ID),
		zap.String("token", token))
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, ok := s.takeResetToken(ctx, token)
	if !ok {
		return util.ErrResetTokenInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(userID, string(hashed))
}

func (s *AuthService) takeResetToken(ctx context.Context, token string) (uint, bool) {
	key := resetTokenPrefix + token

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, key).Uint64()
		if err != nil {
			return 0, false
		}
		s.Redis.Del(ctx, key)
		return uint(val), true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.localTokens[key]
	if !ok || time.Now().After(entry.expires) {
		delete(s.localTokens, key)
		return 0, false
	}
	delete(s.localTokens, key)
	return entry.value, true
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
