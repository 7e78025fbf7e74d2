// Package options holds the shared flag structs for the CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// EntryOptions carries the entry fields settable from flags.
type EntryOptions struct {
	Date    string
	Hours   float64
	Holiday bool
	Link    string
}

// HoursUnset is the flag default meaning "hours not given".
const HoursUnset = -1

func AddEntryArgs(cmd *cobra.Command, eo *EntryOptions) {
	cmd.Flags().StringVarP(&eo.Date, "date", "d", "",
		"Entry date as YYYY-MM-DD. Defaults to today.")
	cmd.Flags().Float64Var(&eo.Hours, "hours", HoursUnset,
		"Hours worked. Omit to leave unrecorded.")
	cmd.Flags().BoolVar(&eo.Holiday, "holiday", false,
		"Mark the day as holiday/leave (hours 0).")
	cmd.Flags().StringVarP(&eo.Link, "link", "l", "",
		"Optional link to the work produced.")
}

// IDOptions toggles record id display.
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, io *IDOptions) {
	cmd.Flags().BoolVar(&io.ShowID, "id", false,
		"Show record ids.")
}

// LocaleOptions overrides the configured display language for one run.
type LocaleOptions struct {
	Lang string
}

func AddLocaleArgs(cmd *cobra.Command, lo *LocaleOptions) {
	cmd.Flags().StringVar(&lo.Lang, "lang", "",
		"Display language for this run, 'th' or 'en'.")
}
