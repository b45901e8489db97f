package handlers

import (
	"fmt"
	"time"

	"github.com/fupdash/backend/internal/clock"
	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/service"
)

// ViewRequest is the body of the view and export endpoints. Every field is
// optional; an empty body runs the vessel view over the whole dataset.
type ViewRequest struct {
	service.QueryParams

	Lang string `json:"lang" validate:"omitempty,oneof=en pt zh"`
	AsOf string `json:"as_of"`
}

// Query converts the request into a pipeline query. The returned moment is
// non-nil only when as_of was given.
func (r ViewRequest) Query(labels i18n.Labels, loc *time.Location) (service.Query, *time.Time, error) {
	q, err := r.QueryParams.Query(labels, loc)
	if err != nil {
		return service.Query{}, nil, err
	}
	if r.AsOf == "" {
		return q, nil, nil
	}
	t, err := clock.ParseMoment(r.AsOf, loc)
	if err != nil {
		return service.Query{}, nil, fmt.Errorf("as_of: %w", err)
	}
	return q, &t, nil
}
