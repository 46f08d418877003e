// Package extractor obtiene los formatos de una URL usando yt-dlp.
package extractor

import (
	"context"

	"github.com/elsanchez/smart-links/internal/domain"
)

// Extractor define la interfaz para obtener los formatos de una URL.
// Todo error retornado es un *ExtractionFailure.
type Extractor interface {
	Extract(ctx context.Context, url string) (*domain.RawInfo, error)
}

// AccountGetter define la interfaz para obtener cuentas (evita dependencia circular)
type AccountGetter interface {
	GetActive(ctx context.Context, platform string) (*domain.Account, error)
	UpdateLastUsed(ctx context.Context, id int64) error
}
