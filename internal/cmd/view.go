package cmd

import (
	"github.com/spf13/cobra"
)

func (f CommandFactory) CreateViewCommand(flgs *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the grouped, risk annotated view as JSON",
		Long:  `Read a FUP sheet, apply the filters and print the pipeline result as JSON.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := f.run(flgs)
			if err != nil {
				return err
			}
			return printJSON(f.Stdout, res)
		},
	}
}
