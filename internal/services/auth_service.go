package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecometrics/internal/auth"
	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/repositories"
	"github.com/ecometrics/pkg/logger"
)

const (
	UsernameSigil     = "@"
	MinUsernameLength = 3
	MinPasswordLength = 6
	// bcrypt 只接受不超过 72 字节的输入
	MaxPasswordBytes = 72
)

// LoginResult 登录成功后返回的数据
type LoginResult struct {
	Token string              `json:"token"`
	User  models.UserResponse `json:"user"`
}

// AuthService 定义了认证服务的接口
type AuthService interface {
	Register(ctx context.Context, username, password, confirmPassword string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type authService struct {
	users  repositories.UserRepository
	tokens *auth.JWTManager
	now    func() time.Time
}

// NewAuthService 创建一个新的 authService 实例
func NewAuthService(users repositories.UserRepository, tokens *auth.JWTManager) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ValidateRegistration 校验注册参数：用户名以 @ 开头且不少于3个字符，密码6位以上、不超过72字节且两次一致
func ValidateRegistration(username, password, confirmPassword string) error {
	if !strings.HasPrefix(username, UsernameSigil) {
		return newValidationError("username", CodeInvalidPrefix, "Username must start with "+UsernameSigil)
	}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		return newValidationError("username", CodeUsernameTooShort, "Username must be at least 3 characters")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return newValidationError("password", CodePasswordTooShort, "Password must be at least 6 characters")
	}
	if len(password) > MaxPasswordBytes {
		return newValidationError("password", CodePasswordTooLong, "Password must be at most 72 bytes")
	}
	if password != confirmPassword {
		return newValidationError("confirmPassword", CodePasswordMismatch, "Passwords do not match")
	}
	return nil
}

// HashPassword 使用 bcrypt 生成密码哈希
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register 注册普通用户，角色固定为 user
func (s *authService) Register(ctx context.Context, username, password, confirmPassword string) (*models.User, error) {
	if err := ValidateRegistration(username, password, confirmPassword); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUsernameExists) {
			return nil, newValidationError("username", CodeDuplicateUsername, "Username already exists")
		}
		return nil, err
	}
	logger.Infof("新用户注册成功: %s (ID: %d)", user.Username, user.ID)
	return user, nil
}

// Authenticate 校验用户名和密码。任何失败都返回 ErrInvalidCredentials，具体原因只写入调试日志。
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			logger.Debugf("User not found: %s", username)
		} else {
			logger.Errorf("Database error during authentication for %s: %v", username, err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debugf("Password mismatch for user: %s", username)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login 认证后更新最后登录时间并签发 Token
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, err := s.tokens.IssueToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.ToResponse()}, nil
}
