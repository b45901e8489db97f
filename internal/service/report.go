package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fupdash/backend/internal/clock"
	"github.com/fupdash/backend/internal/db"
	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/ingest"
	"github.com/fupdash/backend/internal/models"
	"github.com/fupdash/backend/internal/utils"
)

// ErrInvalidUpload wraps every failure to read an uploaded file.
var ErrInvalidUpload = errors.New("invalid upload")

// LatestDataset addresses the most recent upload wherever an id is accepted.
const LatestDataset = "latest"

// Recorder receives pipeline and ingestion measurements.
type Recorder interface {
	ObservePipeline(view string, d time.Duration)
	AddIngestedRows(format string, n int)
}

type nopRecorder struct{}

func (nopRecorder) ObservePipeline(string, time.Duration) {}
func (nopRecorder) AddIngestedRows(string, int)           {}

// ReportService loads uploaded datasets and runs the pipeline over them.
type ReportService struct {
	Store   db.DatasetStore
	Clock   clock.Clock
	Logger  zerolog.Logger
	Metrics Recorder
	Sheet   string
}

type DatasetSummary struct {
	models.Dataset
	Rows            int    `json:"rows"`
	TotalContainers int    `json:"total_containers"`
	Facets          Facets `json:"facets"`
}

func Describe(ds models.Dataset, labels i18n.Labels) DatasetSummary {
	return DatasetSummary{
		Dataset:         ds,
		Rows:            len(ds.Records),
		TotalContainers: TotalContainers(ds.Records),
		Facets:          FacetOptions(ds.Records, labels),
	}
}

// Ingest parses an upload and stores it as a new dataset.
func (s *ReportService) Ingest(ctx context.Context, filename string, r io.Reader) (models.Dataset, error) {
	start := time.Now()
	records, err := ingest.Read(filename, r, s.sheet())
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrInvalidUpload, err)
	}
	fingerprint, err := utils.Fingerprint(records)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("fingerprint: %w", err)
	}

	ds := models.Dataset{
		ID:          uuid.NewString(),
		Filename:    filename,
		Fingerprint: fingerprint,
		UploadedAt:  s.Now().UTC(),
		Records:     records,
	}
	if ingest.Format(filename) == ingest.FormatXLSX {
		ds.Sheet = s.sheet()
	}
	if err := s.Store.Save(ctx, ds); err != nil {
		return models.Dataset{}, fmt.Errorf("save dataset: %w", err)
	}

	s.recorder().AddIngestedRows(ingest.Format(filename), len(records))
	s.Logger.Info().
		Str("dataset_id", ds.ID).
		Str("filename", filename).
		Int("rows", len(records)).
		Str("fingerprint", fingerprint).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("dataset ingested")
	return ds, nil
}

func (s *ReportService) Dataset(ctx context.Context, id string) (models.Dataset, error) {
	if id == "" || id == LatestDataset {
		return s.Store.Latest(ctx)
	}
	return s.Store.Get(ctx, id)
}

// View runs q against a stored dataset at the clock's current moment.
func (s *ReportService) View(ctx context.Context, id string, q Query) (models.Dataset, Result, error) {
	ds, err := s.Dataset(ctx, id)
	if err != nil {
		return models.Dataset{}, Result{}, err
	}
	return ds, s.Run(ds, q, s.Now()), nil
}

// Run is the measured form of the package level Run.
func (s *ReportService) Run(ds models.Dataset, q Query, now time.Time) Result {
	start := time.Now()
	res := Run(ds.Records, q, now)
	elapsed := time.Since(start)

	s.recorder().ObservePipeline(string(res.View), elapsed)
	s.Logger.Debug().
		Str("dataset_id", ds.ID).
		Str("view", string(res.View)).
		Int("input", len(ds.Records)).
		Int("filtered", len(res.Filtered)).
		Int("groups", len(res.Groups)+len(res.Detailed)).
		Dur("elapsed", elapsed).
		Msg("pipeline run")
	return res
}

// Now reads the service clock, the wall clock when none is set.
func (s *ReportService) Now() time.Time {
	if s.Clock == nil {
		return clock.RealClock{}.Now()
	}
	return s.Clock.Now()
}

func (s *ReportService) sheet() string {
	if s.Sheet == "" {
		return ingest.DefaultSheet
	}
	return s.Sheet
}

func (s *ReportService) recorder() Recorder {
	if s.Metrics == nil {
		return nopRecorder{}
	}
	return s.Metrics
}
