package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/quickshop-api/quickshop/internal/cache"
	"github.com/quickshop-api/quickshop/internal/config"
	"github.com/quickshop-api/quickshop/internal/constants"
	"github.com/quickshop-api/quickshop/internal/logger"
	"github.com/quickshop-api/quickshop/internal/models"
	"github.com/quickshop-api/quickshop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务，负责注册、登录与令牌签发
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// JWTClaims 用户 JWT 声明
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// AuthResult 登录/注册结果
type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// GenerateJWT 生成用户 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)
	claims := JWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析用户 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 注册新用户并直接签发登录令牌
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrInvalidParams
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	if exist, err := s.userRepo.GetByUsername(username); err != nil {
		return nil, err
	} else if exist != nil {
		return nil, ErrUsernameExists
	}
	if exist, err := s.userRepo.GetByEmail(email); err != nil {
		return nil, err
	} else if exist != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Address:      strings.TrimSpace(input.Address),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		Role:         constants.RoleCustomer,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("user_registered", "user_id", user.ID, "username", user.Username)
	return s.issueToken(ctx, user)
}

// LoginWithUsername 用户名登录
func (s *AuthService) LoginWithUsername(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	return s.login(ctx, user, password)
}

// LoginWithEmail 邮箱登录
func (s *AuthService) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	return s.login(ctx, user, password)
}

// ResetPassword 按邮箱重置密码，需验证旧密码
func (s *AuthService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.TokenVersion++
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	// 改密后旧令牌全部失效
	if err := cache.DelUserAuthState(ctx, user.ID); err != nil {
		logger.Warnw("auth_state_invalidate_failed", "user_id", user.ID, "error", err)
	}
	logger.Infow("user_password_reset", "user_id", user.ID)
	return nil
}

func (s *AuthService) login(ctx context.Context, user *models.User, password string) (*AuthResult, error) {
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status == constants.UserStatusDisabled {
		return nil, ErrUserDisabled
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		logger.Warnw("user_last_login_update_failed", "user_id", user.ID, "error", err)
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) issueToken(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("auth_state_cache_failed", "user_id", user.ID, "error", err)
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidParams
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", ErrInvalidParams
	}
	return trimmed, nil
}
