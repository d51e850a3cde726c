package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create or update the database schema.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		a, err := newApp(s, true)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Schema ready on %s.\n", s.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
