package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/app"
	"github.com/karnwit/internlog/pkg/commands/options"
	"github.com/karnwit/internlog/pkg/entry"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "log a day of work or leave",
		Example: `
internlog add "built the export pipeline"
internlog add --date 2024-01-10 --hours 4 "half day at the office"
internlog add --holiday "songkran"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}

			fields := app.Fields{
				Date:        eo.Date,
				Description: strings.Join(args, " "),
				WorkLink:    eo.Link,
			}
			if fields.Date == "" {
				fields.Date = time.Now().Format(entry.DateLayout)
			}
			switch {
			case eo.Holiday:
				fields.Hours = entry.Hours(0)
			case eo.Hours != options.HoursUnset:
				fields.Hours = entry.Hours(eo.Hours)
			}

			_, err = svc.Create(context.Background(), fields)
			return oo.HandleError(err)
		},
	}

	options.AddEntryArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
