package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/repository"
)

// LookupRepository implementa repository.LookupRepository usando SQLite
type LookupRepository struct {
	db *sqlx.DB
}

// Compiletime check: asegura que implementa la interfaz
var _ repository.LookupRepository = (*LookupRepository)(nil)

// NewLookupRepository crea un nuevo repositorio del historial
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// lookupRow mapea la tabla SQL a struct Go
type lookupRow struct {
	ID           int64          `db:"id"`
	URL          string         `db:"url"`
	Platform     sql.NullString `db:"platform"`
	Title        sql.NullString `db:"title"`
	VideoCount   int            `db:"video_count"`
	AudioCount   int            `db:"audio_count"`
	Status       string         `db:"status"`
	ErrorMessage sql.NullString `db:"error_message"`
	ErrorKind    sql.NullString `db:"error_kind"`
	CreatedAt    int64          `db:"created_at"`
}

// Create inserta una nueva entrada en el historial
func (r *LookupRepository) Create(ctx context.Context, l *domain.Lookup) (int64, error) {
	createdAt := l.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO lookups (url, platform, title, video_count, audio_count, status, error_message, error_kind, created_at)
		VALUES (:url, :platform, :title, :video_count, :audio_count, :status, :error_message, :error_kind, :created_at)
	`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"url":           l.URL,
		"platform":      l.Platform,
		"title":         l.Title,
		"video_count":   l.VideoCount,
		"audio_count":   l.AudioCount,
		"status":        string(l.Status),
		"error_message": l.ErrorMessage,
		"error_kind":    l.ErrorKind,
		"created_at":    createdAt.Unix(),
	})
	if err != nil {
		return 0, fmt.Errorf("insert lookup: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}

	l.ID = id
	l.CreatedAt = time.Unix(createdAt.Unix(), 0)

	return id, nil
}

// GetByID obtiene una entrada por ID
func (r *LookupRepository) GetByID(ctx context.Context, id int64) (*domain.Lookup, error) {
	var row lookupRow

	query := `SELECT * FROM lookups WHERE id = ?`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", repository.ErrLookupNotFound, id)
		}
		return nil, fmt.Errorf("get lookup: %w", err)
	}

	return lookupRowToDomain(&row), nil
}

// GetRecent obtiene las consultas más recientes primero
func (r *LookupRepository) GetRecent(ctx context.Context, limit int) ([]*domain.Lookup, error) {
	var rows []lookupRow

	query := `
		SELECT * FROM lookups
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get recent lookups: %w", err)
	}

	return lookupRowsToDomain(rows), nil
}

// CountByStatus cuenta consultas por status
func (r *LookupRepository) CountByStatus(ctx context.Context, status domain.LookupStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM lookups WHERE status = ?`
	err := r.db.GetContext(ctx, &count, query, string(status))
	return count, err
}

// CountTotal cuenta todas las consultas
func (r *LookupRepository) CountTotal(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM lookups`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}

// DeleteOlderThan elimina las entradas anteriores a cutoff
func (r *LookupRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lookups WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete old lookups: %w", err)
	}

	return result.RowsAffected()
}

// Helper: conversión row → domain
func lookupRowToDomain(row *lookupRow) *domain.Lookup {
	return &domain.Lookup{
		ID:           row.ID,
		URL:          row.URL,
		Platform:     row.Platform.String,
		Title:        row.Title.String,
		VideoCount:   row.VideoCount,
		AudioCount:   row.AudioCount,
		Status:       domain.LookupStatus(row.Status),
		ErrorMessage: row.ErrorMessage.String,
		ErrorKind:    row.ErrorKind.String,
		CreatedAt:    time.Unix(row.CreatedAt, 0),
	}
}

// Helper: conversión múltiples rows → domain
func lookupRowsToDomain(rows []lookupRow) []*domain.Lookup {
	lookups := make([]*domain.Lookup, 0, len(rows))

	for i := range rows {
		lookups = append(lookups, lookupRowToDomain(&rows[i]))
	}

	return lookups
}
