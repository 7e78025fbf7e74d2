package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karnwit/internlog/pkg/identity"
)

func addLogin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "login <user>",
		Short: "set the active user for this machine",
		Example: `
internlog login praew
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := identity.Login(args[0]); err != nil {
				return err
			}
			fmt.Printf("logged in as %s\n", args[0])
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "forget the active user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return identity.Logout()
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "print the active user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := identity.Current()
			if err != nil {
				return err
			}
			fmt.Println(user)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
