// Package commands wires the cobra command tree for internlog.
package commands

import (
	"fmt"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/app"
	"github.com/karnwit/internlog/pkg/commands/options"
	"github.com/karnwit/internlog/pkg/i18n"
	"github.com/karnwit/internlog/pkg/identity"
	"github.com/karnwit/internlog/pkg/logging"
	"github.com/karnwit/internlog/pkg/store"
)

var (
	oo = &options.OutputOptions{}
	lo = &options.LocaleOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "internlog",
		Short: base.Wrap80("Keep a personal internship log: daily hours, what you did, and where the work lives."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			return logging.Init(cfg.LogPath(), cfg.LogLevel())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&oo.JSON, "json", false, "Output as JSON where supported.")
	options.AddLocaleArgs(cmd, lo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addStats(topLevel)
	addExport(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addTheme(topLevel)
	addLang(topLevel)
	addVersion(topLevel)
}

// newService loads config and storage and binds them to the logged-in user.
func newService() (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	user, err := identity.Current()
	if err != nil {
		return nil, nil, fmt.Errorf("not logged in, run `internlog login <user>`: %w", err)
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &app.Service{Persistence: p, UserID: user}, cfg, nil
}

// translator resolves the display language: the --lang flag wins over the
// configured locale.
func translator(cfg store.Config) *i18n.Translator {
	lang := lo.Lang
	if lang == "" && cfg != nil {
		lang = cfg.Locale()
	}
	tr, err := i18n.New(lang)
	if err != nil {
		logging.L().WithError(err).Warn("load locale")
		tr, _ = i18n.New(i18n.DefaultLang)
	}
	return tr
}
