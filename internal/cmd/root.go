package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fupdash/backend/internal/clock"
	"github.com/fupdash/backend/internal/i18n"
	"github.com/fupdash/backend/internal/ingest"
	"github.com/fupdash/backend/internal/models"
	"github.com/fupdash/backend/internal/service"
)

// CommandFactory builds the fupctl commands around injectable I/O and time.
type CommandFactory struct {
	Clock  clock.Clock
	Stdout io.Writer
	Logger zerolog.Logger
}

var defaultCommandFactory = CommandFactory{
	Clock:  clock.RealClock{},
	Stdout: os.Stdout,
	Logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger(),
}

func (f CommandFactory) CreateRootCommand(flgs *Flags) *cobra.Command {
	root := &cobra.Command{
		Use:           "fupctl",
		Short:         "fupctl runs the demurrage risk pipeline over a FUP sheet",
		Long:          `fupctl reads a FUP workbook or CSV export, filters and groups its shipments and prints or exports the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	view := f.CreateViewCommand(flgs)
	setPipelineFlags(view, flgs)
	export := f.CreateExportCommand(flgs)
	setPipelineFlags(export, flgs)
	export.Flags().StringVar(&flgs.Out, flagMap.Out.Name, flagMap.Out.Value, flagMap.Out.Usage)
	root.AddCommand(view, export)
	return root
}

// run loads the file named by flgs and evaluates the pipeline over it.
func (f CommandFactory) run(flgs *Flags) (service.Result, i18n.Labels, error) {
	loc, err := time.LoadLocation(flgs.Timezone)
	if err != nil {
		return service.Result{}, i18n.Labels{}, fmt.Errorf("timezone: %w", err)
	}
	labels := i18n.For(flgs.Lang)
	q, err := flgs.query(labels, loc)
	if err != nil {
		return service.Result{}, i18n.Labels{}, err
	}
	now := f.Clock.Now().In(loc)
	if flgs.Now != "" {
		now, err = clock.ParseMoment(flgs.Now, loc)
		if err != nil {
			return service.Result{}, i18n.Labels{}, fmt.Errorf("now: %w", err)
		}
	}

	file, err := os.Open(flgs.File)
	if err != nil {
		return service.Result{}, i18n.Labels{}, err
	}
	defer file.Close()
	records, err := ingest.Read(flgs.File, file, flgs.Sheet)
	if err != nil {
		return service.Result{}, i18n.Labels{}, fmt.Errorf("read %s: %w", flgs.File, err)
	}
	f.Logger.Info().Str("file", flgs.File).Int("rows", len(records)).Msg("sheet loaded")

	reports := &service.ReportService{Logger: f.Logger}
	ds := models.Dataset{ID: flgs.File, Filename: flgs.File, Records: records}
	return reports.Run(ds, q, now), labels, nil
}

func (flgs *Flags) query(labels i18n.Labels, loc *time.Location) (service.Query, error) {
	p := flgs.QueryParams
	if flgs.Desc {
		p.Direction = string(service.Desc)
	}
	return p.Query(labels, loc)
}

func Execute() {
	flgs := &Flags{}
	if err := defaultCommandFactory.CreateRootCommand(flgs).Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}
