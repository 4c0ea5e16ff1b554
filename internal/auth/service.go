package auth

import (
	"log/slog"
	"strings"

	"github.com/frahmantamala/attendance-tracker/internal"
	adminDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/admin"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetByUsername(username string) (*adminDatamodel.AdminUser, error)
	Create(admin *adminDatamodel.AdminUser) error
}

type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	limiter    *LoginLimiter
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, limiter *LoginLimiter, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		limiter:    limiter,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login verifies admin credentials and issues a token pair. Unknown usernames
// and wrong passwords both return the same error so the endpoint does not
// leak which usernames exist.
func (s *Service) Login(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(dto.Username))

	if !s.limiter.Allow(username) {
		s.logger.Warn("login locked out", "username", username)
		return nil, internal.ErrTooManyAttempts
	}

	admin, err := s.repo.GetByUsername(username)
	if err != nil || admin == nil {
		s.limiter.RecordFailure(username)
		s.logger.Warn("login failed, unknown username", "username", username)
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(dto.Password)); err != nil {
		s.limiter.RecordFailure(username)
		s.logger.Warn("login failed, wrong password", "username", username)
		return nil, internal.ErrInvalidCredentials
	}

	tokens, err := s.tokens.GenerateTokenPair(admin.ID, admin.Username)
	if err != nil {
		s.logger.Error("failed to generate tokens", "error", err, "username", username)
		return nil, internal.NewInternalError("no se pudo iniciar sesión", err)
	}

	s.limiter.Reset(username)
	s.logger.Info("admin logged in", "username", username)
	return &LoginResponse{Username: admin.Username, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(dto RefreshDTO) (*TokenPair, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.tokens.ValidateRefreshToken(dto.RefreshToken)
	if err != nil {
		s.logger.Warn("refresh token rejected", "error", err)
		return nil, err
	}

	tokens, err := s.tokens.GenerateTokenPair(claims.AdminID, claims.Username)
	if err != nil {
		s.logger.Error("failed to rotate tokens", "error", err, "username", claims.Username)
		return nil, internal.NewInternalError("no se pudo renovar la sesión", err)
	}

	s.logger.Info("tokens refreshed", "username", claims.Username)
	return tokens, nil
}

// ValidateAccessToken is used by the HTTP middleware.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

// CreateAdmin registers an admin account with a bcrypt-hashed password. Used
// by the seeder command.
func (s *Service) CreateAdmin(username, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || len(password) < 8 {
		return internal.NewValidationError("usuario requerido y contraseña de al menos 8 caracteres", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByUsername(username); err == nil && existing != nil {
		return internal.NewConflictError("el usuario ya existe", internal.ErrCodeValidationFailed)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("no se pudo crear el administrador", err)
	}

	if err := s.repo.Create(&adminDatamodel.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		s.logger.Error("failed to create admin", "error", err, "username", username)
		return internal.NewInternalError("no se pudo crear el administrador", err)
	}

	s.logger.Info("admin created", "username", username)
	return nil
}
