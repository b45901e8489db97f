package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fupdash/backend/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id          TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	sheet       TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS dataset_records (
	dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
	position   INT NOT NULL,
	record     JSONB NOT NULL,
	PRIMARY KEY (dataset_id, position)
);
CREATE INDEX IF NOT EXISTS datasets_uploaded_at_idx ON datasets (uploaded_at DESC);
`

// Store persists uploaded datasets in Postgres.
type Store struct {
	Pool *pgxpool.Pool
}

var _ DatasetStore = (*Store)(nil)

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

// EnsureSchema creates the dataset tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) Save(ctx context.Context, ds models.Dataset) error {
	rows := make([][]any, 0, len(ds.Records))
	for i, r := range ds.Records {
		raw, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		rows = append(rows, []any{ds.ID, i, raw})
	}

	return s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO datasets (id, filename, sheet, fingerprint, uploaded_at)
			VALUES ($1,$2,$3,$4,$5)
		`, ds.ID, ds.Filename, ds.Sheet, ds.Fingerprint, ds.UploadedAt)
		if err != nil {
			return err
		}
		_, err = tx.CopyFrom(ctx, pgx.Identifier{"dataset_records"}, []string{"dataset_id", "position", "record"}, pgx.CopyFromRows(rows))
		return err
	})
}

func (s *Store) Get(ctx context.Context, id string) (models.Dataset, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, filename, sheet, fingerprint, uploaded_at FROM datasets WHERE id = $1`, id)
	return s.load(ctx, row)
}

func (s *Store) Latest(ctx context.Context) (models.Dataset, error) {
	row := s.Pool.QueryRow(ctx, `SELECT id, filename, sheet, fingerprint, uploaded_at FROM datasets ORDER BY uploaded_at DESC, id DESC LIMIT 1`)
	return s.load(ctx, row)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDatasetNotFound
	}
	return nil
}

func (s *Store) load(ctx context.Context, row pgx.Row) (models.Dataset, error) {
	var ds models.Dataset
	if err := row.Scan(&ds.ID, &ds.Filename, &ds.Sheet, &ds.Fingerprint, &ds.UploadedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Dataset{}, ErrDatasetNotFound
		}
		return models.Dataset{}, err
	}

	rows, err := s.Pool.Query(ctx, `SELECT record FROM dataset_records WHERE dataset_id = $1 ORDER BY position ASC`, ds.ID)
	if err != nil {
		return models.Dataset{}, err
	}
	defer rows.Close()

	ds.Records = make([]models.ShipmentRecord, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return models.Dataset{}, err
		}
		var r models.ShipmentRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return models.Dataset{}, fmt.Errorf("decode record: %w", err)
		}
		ds.Records = append(ds.Records, r)
	}
	return ds, rows.Err()
}
