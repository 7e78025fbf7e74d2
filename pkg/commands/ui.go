package commands

import (
	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive log screen",
		Example: `
internlog ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}
			return tui.Run(svc, cfg)
		},
	}

	topLevel.AddCommand(cmd)
}
