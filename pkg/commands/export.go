package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/export"
)

func addExport(topLevel *cobra.Command) {
	var csvOut bool

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "write the log to an Excel workbook",
		Example: `
internlog export
internlog export report.xlsx
internlog export --csv logs.csv
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}

			snapshot, err := svc.Snapshot(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}

			path := export.Filename
			if len(args) == 1 {
				path = args[0]
			}

			if csvOut {
				f, err := os.Create(path)
				if err != nil {
					return oo.HandleError(err)
				}
				defer f.Close()
				if err := export.WriteCSV(f, snapshot); err != nil {
					return oo.HandleError(err)
				}
			} else if err := export.WriteXLSX(path, snapshot); err != nil {
				return oo.HandleError(err)
			}

			fmt.Printf("wrote %d entries to %s\n", len(snapshot), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&csvOut, "csv", false, "Write CSV instead of xlsx.")

	topLevel.AddCommand(cmd)
}
