package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/aggregate"
	"github.com/karnwit/internlog/pkg/printers"
)

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "show internship totals",
		Example: `
internlog stats
internlog stats --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}

			snapshot, err := svc.Snapshot(context.Background())
			if err != nil {
				return oo.HandleError(err)
			}
			stats := aggregate.Compute(snapshot)

			if oo.JSON {
				b, err := json.MarshalIndent(stats, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			tr := translator(cfg)
			pp := printers.PrettyPrint{Tr: tr}
			fmt.Println("")
			pp.Title(tr.T("total_summary"))
			pp.Stats(stats)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
