package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/trackedge/trackedge/internal/config"
	"github.com/trackedge/trackedge/internal/models"
	"github.com/trackedge/trackedge/internal/repo"
	"github.com/trackedge/trackedge/internal/xe"
	"github.com/trackedge/trackedge/pkg/nostd"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService 认证服务
type AuthService struct {
	logger        *zap.Logger
	userRepo      *repo.UserRepo
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(logger *zap.Logger, db *gorm.DB, conf *config.Config) *AuthService {
	jwtSecret := conf.Auth.JWTSecret
	if jwtSecret == "" {
		logger.Warn("jwt secret not configured, tokens will not survive a restart")
		jwtSecret = uuid.NewString()
	}
	return &AuthService{
		logger:        logger,
		userRepo:      repo.NewUserRepo(db),
		jwtSecret:     jwtSecret,
		jwtExpiration: conf.JWTExpiration(),
	}
}

// JWTClaims JWT载荷
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserInfo(user models.User) UserInfo {
	return UserInfo{ID: user.ID, Email: user.Email, Name: user.Name}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 注册新用户
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	email := normalizeEmail(req.Email)
	if !nostd.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", xe.ErrInvalidParams)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xe.ErrAccountAlreadyUsed
	}

	passwordHash, err := nostd.BcryptEncode([]byte(req.Password))
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           ulid.Make().String(),
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         strings.TrimSpace(req.Name),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	info := toUserInfo(user)
	return &info, nil
}

// Login 用户登录
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login failed: user not found", zap.String("ip", ip))
			return nil, xe.ErrIncorrectPassword
		}
		return nil, err
	}

	if !user.IsActive {
		s.logger.Warn("login failed: user not active",
			zap.String("user_id", user.ID),
			zap.String("ip", ip))
		return nil, xe.ErrUserDisabled
	}

	if err := nostd.BcryptMatch([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login failed: invalid password",
			zap.String("user_id", user.ID),
			zap.String("ip", ip))
		return nil, xe.ErrIncorrectPassword
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, ip); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtExpiration)
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "trackedge",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("ip", ip))

	return &LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		User:      toUserInfo(user),
	}, nil
}

// ValidateToken 验证JWT Token
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xe.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, xe.ErrInvalidToken
	}
	return claims, nil
}

// GetCurrentUser 获取当前用户信息
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*UserInfo, error) {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xe.ErrInvalidToken
		}
		return nil, err
	}

	info := toUserInfo(user)
	return &info, nil
}
