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

const accountColumns = `id, platform, name, cookie_path, is_active, last_used, created_at, validation_status, validation_error`

// AccountRepository implementa repository.AccountRepository sobre la tabla accounts
type AccountRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db, now: time.Now}
}

type accountRow struct {
	ID               int64          `db:"id"`
	Platform         string         `db:"platform"`
	Name             string         `db:"name"`
	CookiePath       string         `db:"cookie_path"`
	IsActive         bool           `db:"is_active"`
	LastUsed         sql.NullInt64  `db:"last_used"`
	CreatedAt        int64          `db:"created_at"`
	ValidationStatus string         `db:"validation_status"`
	ValidationError  sql.NullString `db:"validation_error"`
}

func (r *AccountRepository) Create(ctx context.Context, acc *domain.Account) (int64, error) {
	row := accountRow{
		Platform:         acc.Platform,
		Name:             acc.Name,
		CookiePath:       acc.CookiePath,
		IsActive:         acc.IsActive,
		ValidationStatus: acc.ValidationStatus,
	}
	if row.ValidationStatus == "" {
		row.ValidationStatus = domain.ValidationStatusUnknown
	}
	if acc.ValidationError != nil {
		row.ValidationError = sql.NullString{String: *acc.ValidationError, Valid: true}
	}

	result, err := r.db.NamedExecContext(ctx, `
		INSERT INTO accounts (platform, name, cookie_path, is_active, validation_status, validation_error)
		VALUES (:platform, :name, :cookie_path, :is_active, :validation_status, :validation_error)
	`, row)
	if err != nil {
		return 0, fmt.Errorf("insert account %s/%s: %w", acc.Platform, acc.Name, err)
	}

	return result.LastInsertId()
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	acc, err := r.getOne(ctx, `WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", repository.ErrAccountNotFound, id)
	}
	return acc, err
}

func (r *AccountRepository) GetActive(ctx context.Context, platform string) (*domain.Account, error) {
	acc, err := r.getOne(ctx, `WHERE platform = ? AND is_active = 1 LIMIT 1`, platform)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return acc, err
}

func (r *AccountRepository) getOne(ctx context.Context, where string, args ...any) (*domain.Account, error) {
	var row accountRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+accountColumns+` FROM accounts `+where, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return row.toDomain(), nil
}

// GetAll lista las cuentas de la plataforma, la activa primero
func (r *AccountRepository) GetAll(ctx context.Context, platform string) ([]*domain.Account, error) {
	var rows []accountRow
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE platform = ?
		ORDER BY is_active DESC, last_used DESC, name ASC`
	if err := r.db.SelectContext(ctx, &rows, query, platform); err != nil {
		return nil, fmt.Errorf("list %s accounts: %w", platform, err)
	}

	accounts := make([]*domain.Account, len(rows))
	for i := range rows {
		accounts[i] = rows[i].toDomain()
	}
	return accounts, nil
}

func (r *AccountRepository) ListPlatforms(ctx context.Context) ([]string, error) {
	var platforms []string
	if err := r.db.SelectContext(ctx, &platforms, `SELECT DISTINCT platform FROM accounts ORDER BY platform`); err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	return platforms, nil
}

// SetActive marca platform/name como la cuenta activa y apaga el resto
func (r *AccountRepository) SetActive(ctx context.Context, platform, name string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.GetContext(ctx, &id, `SELECT id FROM accounts WHERE platform = ? AND name = ?`, platform, name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s/%s", repository.ErrAccountNotFound, platform, name)
	}
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	// Un solo UPDATE deja exactamente una cuenta activa por plataforma
	if _, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET is_active = (id = ?),
		    last_used = CASE WHEN id = ? THEN ? ELSE last_used END
		WHERE platform = ?
	`, id, id, r.now().Unix(), platform); err != nil {
		return fmt.Errorf("activate account: %w", err)
	}

	return tx.Commit()
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, id, `DELETE FROM accounts WHERE id = ?`, id)
}

func (r *AccountRepository) UpdateLastUsed(ctx context.Context, id int64) error {
	return r.execOne(ctx, id, `UPDATE accounts SET last_used = ? WHERE id = ?`, r.now().Unix(), id)
}

func (r *AccountRepository) UpdateValidation(ctx context.Context, id int64, status string, validationErr *string) error {
	return r.execOne(ctx, id, `UPDATE accounts SET validation_status = ?, validation_error = ? WHERE id = ?`,
		status, validationErr, id)
}

// execOne ejecuta una sentencia que debe afectar a la cuenta id
func (r *AccountRepository) execOne(ctx context.Context, id int64, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("account %d: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", repository.ErrAccountNotFound, id)
	}
	return nil
}

func (row *accountRow) toDomain() *domain.Account {
	acc := &domain.Account{
		ID:               row.ID,
		Platform:         row.Platform,
		Name:             row.Name,
		CookiePath:       row.CookiePath,
		IsActive:         row.IsActive,
		CreatedAt:        time.Unix(row.CreatedAt, 0),
		ValidationStatus: row.ValidationStatus,
	}
	if row.LastUsed.Valid {
		lastUsed := time.Unix(row.LastUsed.Int64, 0)
		acc.LastUsed = &lastUsed
	}
	if row.ValidationError.Valid {
		acc.ValidationError = &row.ValidationError.String
	}
	return acc
}
