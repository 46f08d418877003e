package repository

import (
	"context"
	"errors"

	"github.com/elsanchez/smart-links/internal/domain"
)

// ErrAccountNotFound se retorna cuando la cuenta pedida no existe
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository guarda las cuentas de cookies por plataforma.
// Cada plataforma tiene a lo sumo una cuenta activa; es la que usa yt-dlp.
type AccountRepository interface {
	Create(ctx context.Context, acc *domain.Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error

	// GetActive retorna nil, nil si la plataforma no tiene cuenta activa
	GetActive(ctx context.Context, platform string) (*domain.Account, error)
	GetAll(ctx context.Context, platform string) ([]*domain.Account, error)
	ListPlatforms(ctx context.Context) ([]string, error)

	SetActive(ctx context.Context, platform, name string) error
	UpdateLastUsed(ctx context.Context, id int64) error
	UpdateValidation(ctx context.Context, id int64, status string, validationErr *string) error
}
