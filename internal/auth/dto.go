package auth

import (
	"strings"

	"github.com/frahmantamala/attendance-tracker/internal"
)

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if strings.TrimSpace(dto.Username) == "" || dto.Password == "" {
		return internal.NewValidationError("usuario y contraseña son requeridos", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshDTO) Validate() error {
	if dto.RefreshToken == "" {
		return internal.NewValidationError("refresh token requerido", internal.ErrCodeValidationFailed)
	}
	return nil
}

type LoginResponse struct {
	Username string     `json:"username"`
	Tokens   *TokenPair `json:"tokens"`
}
