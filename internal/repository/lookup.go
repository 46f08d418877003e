package repository

import (
	"context"
	"errors"
	"time"

	"github.com/elsanchez/smart-links/internal/domain"
)

// ErrLookupNotFound se retorna cuando no existe la entrada del historial
var ErrLookupNotFound = errors.New("lookup not found")

// LookupRepository define las operaciones sobre el historial de consultas
type LookupRepository interface {
	Create(ctx context.Context, l *domain.Lookup) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Lookup, error)
	GetRecent(ctx context.Context, limit int) ([]*domain.Lookup, error)

	// Estadísticas
	CountByStatus(ctx context.Context, status domain.LookupStatus) (int, error)
	CountTotal(ctx context.Context) (int, error)

	// Retención
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
