package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/auth"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(setPasswordCmd())
	return cmd
}

func setPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "set-password <username>",
		Short: "Create an admin account or replace its password",
		Long: `Creates the admin account if it does not exist, otherwise replaces its
password. The password is read from --password or, when omitted, from the
first line of standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given on --password or stdin")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if len(password) < auth.MinPasswordLength {
				return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
			}

			store, err := folio.NewStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SetAdminCredentials(args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password set for %s\n", strings.TrimSpace(args[0]))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (read from stdin when empty)")
	return cmd
}
