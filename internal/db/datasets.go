package db

import (
	"context"
	"errors"

	"github.com/fupdash/backend/internal/models"
)

var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetStore keeps uploaded shipment sheets between requests.
type DatasetStore interface {
	Save(ctx context.Context, ds models.Dataset) error
	Get(ctx context.Context, id string) (models.Dataset, error)
	Latest(ctx context.Context) (models.Dataset, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
