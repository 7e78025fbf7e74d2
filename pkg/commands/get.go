package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/commands/options"
	"github.com/karnwit/internlog/pkg/printers"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "list your log entries, newest first",
		Example: `
internlog get
internlog get --id
internlog get --json
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

			if oo.JSON {
				b, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(color.Output, string(b))
				return nil
			}

			tr := translator(cfg)
			pp := printers.PrettyPrint{ShowID: io.ShowID, Tr: tr}
			fmt.Println("")
			pp.Title(tr.T("recent_logs"))
			pp.Entries(snapshot)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
