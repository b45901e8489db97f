package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fupdash/backend/internal/export"
)

func (f CommandFactory) CreateExportCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the filtered view to an xlsx workbook",
		Long:  `Read a FUP sheet, apply the filters and write the same workbook the dashboard export produces.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, labels, err := f.run(flgs)
			if err != nil {
				return err
			}
			out := flgs.Out
			if out == "" {
				out = export.Filename(res.GeneratedAt)
			}
			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := export.Write(file, res, labels); err != nil {
				file.Close()
				return fmt.Errorf("write %s: %w", out, err)
			}
			if err := file.Close(); err != nil {
				return err
			}
			f.Logger.Info().Str("out", out).Int("rows", len(res.Filtered)).Msg("workbook written")
			fmt.Fprintln(f.Stdout, out)
			return nil
		},
	}
}
