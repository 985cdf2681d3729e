package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reviewhub/internal/app/reviewhub/entity"
	"reviewhub/internal/app/reviewhub/repository"
	"reviewhub/internal/app/reviewhub/util"
	"reviewhub/pkg/metrics"

	"github.com/google/uuid"
)

// AuthService обрабатывает регистрацию, вход и проверку токенов
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *util.JWTManager
}

// NewAuthService создает новый сервис аутентификации с внедрением зависимостей
func NewAuthService(userRepo repository.UserRepository, jwtManager *util.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register создает нового пользователя с ролью обычного пользователя
// Администраторы назначаются напрямую в хранилище, не через API
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	passwordHash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.AuthRegistrations.Inc()

	return user, nil
}

// Login проверяет учетные данные и выдает access токен
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		metrics.AuthLogins.WithLabelValues("failed").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()

	return &entity.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.GetAccessTokenDuration().Seconds()),
	}, nil
}

// ValidateToken разбирает токен и возвращает principal текущего запроса
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*entity.Principal, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &entity.Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Admin:    claims.IsAdmin,
	}, nil
}

// GetUser получает пользователя по ID
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
