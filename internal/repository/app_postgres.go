package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futig/app-builder/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppRepository defines the interface for saved app persistence
type AppRepository interface {
	Save(ctx context.Context, app entity.AppDescription) (string, error)
	LoadAll(ctx context.Context) ([]*entity.SavedRecord, error)
	Get(ctx context.Context, id string) (*entity.SavedRecord, error)
}

var _ AppRepository = &AppPostgres{}

const (
	insertAppQuery  = `INSERT INTO apps (id, document) VALUES ($1, $2)`
	selectAppsQuery = `SELECT id, document, created_at FROM apps ORDER BY created_at DESC, id`
	selectAppQuery  = `SELECT id, document, created_at FROM apps WHERE id = $1`
)

// AppPostgres implements AppRepository using PostgreSQL
type AppPostgres struct {
	db *pgxpool.Pool
}

func NewAppPostgres(db *pgxpool.Pool) *AppPostgres {
	return &AppPostgres{db: db}
}

// Save stores app as a new record and returns its generated identifier.
// Records are never updated; saving the same app twice creates two records.
func (r *AppPostgres) Save(ctx context.Context, app entity.AppDescription) (string, error) {
	if err := checkRequiredFields(app); err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}

	document, err := toDocument(app)
	if err != nil {
		return "", fmt.Errorf("%w: encode app: %w", entity.ErrPersistence, err)
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%w: generate app ID: %w", entity.ErrPersistence, err)
	}

	if _, err := r.db.Exec(ctx, insertAppQuery, id, document); err != nil {
		return "", fmt.Errorf("%w: insert app: %w", entity.ErrPersistence, err)
	}

	return id.String(), nil
}

// LoadAll returns every stored record, newest first.
func (r *AppPostgres) LoadAll(ctx context.Context) ([]*entity.SavedRecord, error) {
	rows, err := r.db.Query(ctx, selectAppsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: list apps: %w", entity.ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]*entity.SavedRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate apps: %w", entity.ErrPersistence, err)
	}

	return records, nil
}

func (r *AppPostgres) Get(ctx context.Context, id string) (*entity.SavedRecord, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return nil, entity.ErrAppNotFound
	}

	record, err := scanRecord(r.db.QueryRow(ctx, selectAppQuery, appID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrAppNotFound
		}
		return nil, fmt.Errorf("%w: get app: %w", entity.ErrPersistence, err)
	}

	return record, nil
}

func scanRecord(row pgx.Row) (*entity.SavedRecord, error) {
	var (
		id        uuid.UUID
		document  []byte
		createdAt time.Time
	)

	if err := row.Scan(&id, &document, &createdAt); err != nil {
		return nil, err
	}

	return toEntityRecord(id, document, createdAt)
}

func checkRequiredFields(app entity.AppDescription) error {
	switch {
	case strings.TrimSpace(app.AppName) == "":
		return fmt.Errorf("%w: appName", entity.ErrMissingField)
	case strings.TrimSpace(app.Description) == "":
		return fmt.Errorf("%w: description", entity.ErrMissingField)
	case app.Entities == nil:
		return fmt.Errorf("%w: entities", entity.ErrMissingField)
	case app.Roles == nil:
		return fmt.Errorf("%w: roles", entity.ErrMissingField)
	case app.Features == nil:
		return fmt.Errorf("%w: features", entity.ErrMissingField)
	}
	return nil
}
