package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/i18n"
	"github.com/karnwit/internlog/pkg/store"
	"github.com/karnwit/internlog/pkg/theme"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "theme [dark|blue|light]",
		Short:     "show or set the color theme",
		ValidArgs: []string{"dark", "blue", "light"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
internlog theme
internlog theme blue
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Println(theme.Load(cfg.Theme()).Name)
				return nil
			}

			name := strings.ToLower(args[0])
			switch theme.Name(name) {
			case theme.Dark, theme.Blue, theme.Light:
			default:
				return fmt.Errorf("unknown theme %q", args[0])
			}
			return cfg.SetTheme(name)
		},
	}

	topLevel.AddCommand(cmd)
}

func addLang(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "lang [th|en]",
		Short:     "show or set the display language",
		ValidArgs: i18n.Supported(),
		Args:      cobra.MaximumNArgs(1),
		Example: `
internlog lang
internlog lang en
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Println(cfg.Locale())
				return nil
			}

			code := strings.ToLower(args[0])
			supported := false
			for _, s := range i18n.Supported() {
				if s == code {
					supported = true
				}
			}
			if !supported {
				return fmt.Errorf("unknown language %q", args[0])
			}
			return cfg.SetLocale(code)
		},
	}

	topLevel.AddCommand(cmd)
}
