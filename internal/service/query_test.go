package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/models"
)

func TestQueryParamsDefaults(t *testing.T) {
	q, err := QueryParams{}.Query(i18n.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, ViewVessel, q.View)
	assert.Equal(t, DefaultSort, q.Sort)
	assert.Nil(t, q.Filter.Arrival.From)
	assert.Nil(t, q.Filter.Deadline.To)
}

func TestQueryParamsConvertsEveryField(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	p := QueryParams{
		View:         "po",
		Sort:         "bl/awb",
		Direction:    "desc",
		ArrivalFrom:  "2023-01-01",
		ArrivalTo:    "2023-01-31",
		DeadlineFrom: "2023-02-01",
		DeadlineTo:   "2023-02-28",
		POSearch:     "4500",
		Statuses:     []string{"In transit"},
		Brokers:      []string{"ACME"},
	}
	q, err := p.Query(i18n.For("pt"), loc)
	require.NoError(t, err)

	assert.Equal(t, ViewPO, q.View)
	assert.Equal(t, SortSpec{Key: models.ColBL, Direction: Desc}, q.Sort)
	assert.Equal(t, "pt", q.Labels.Lang)
	require.NotNil(t, q.Filter.Arrival.From)
	assert.True(t, time.Date(2023, 1, 1, 0, 0, 0, 0, loc).Equal(*q.Filter.Arrival.From))
	require.NotNil(t, q.Filter.Arrival.To)
	assert.True(t, time.Date(2023, 1, 31, 0, 0, 0, 0, loc).Equal(*q.Filter.Arrival.To))
	require.NotNil(t, q.Filter.Deadline.From)
	require.NotNil(t, q.Filter.Deadline.To)
	assert.True(t, time.Date(2023, 2, 28, 0, 0, 0, 0, loc).Equal(*q.Filter.Deadline.To))
	assert.Equal(t, "4500", q.Filter.POSearch)
	assert.Equal(t, []string{"In transit"}, q.Filter.Statuses)
	assert.Equal(t, []string{"ACME"}, q.Filter.Brokers)
}

func TestQueryParamsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		p    QueryParams
	}{
		{name: "view", p: QueryParams{View: "map"}},
		{name: "sort key", p: QueryParams{Sort: "colour"}},
		{name: "direction", p: QueryParams{Direction: "up"}},
		{name: "arrival bound", p: QueryParams{ArrivalFrom: "01/02/2023"}},
		{name: "deadline bound", p: QueryParams{DeadlineTo: "2023-02-30"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Query(i18n.Default(), time.UTC)
			assert.Error(t, err)
		})
	}
}
