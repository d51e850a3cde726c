package main

import (
	"fmt"

	"github.com/pysugar/oura-scraper/internal/auth/oura"
	"github.com/spf13/cobra"
)

var authFlags struct {
	port      int
	noBrowser bool
	backend   string
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to your Oura account in the browser.",
	Long: `Starts a local callback server, opens the Oura consent page and stores
the resulting tokens. The redirect URI registered for your Oura application
must be http://localhost:<port>/callback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		if err := s.RequireClient(); err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			s.CallbackPort = authFlags.port
		}
		if authFlags.backend != "" {
			s.TokenBackend = authFlags.backend
			if err := s.Validate(); err != nil {
				return err
			}
		}

		a, err := newApp(s, false)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.manager.AuthorizeInteractive(cmd.Context(), s.CallbackPort, !authFlags.noBrowser, oura.CallbackTimeout)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Authorized. Tokens stored in the %s backend, access token valid until %s.\n",
			s.TokenBackend, p.ExpiresAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	authCmd.Flags().IntVar(&authFlags.port, "port", oura.DefaultCallbackPort, "local callback port")
	authCmd.Flags().BoolVar(&authFlags.noBrowser, "no-browser", false, "print the consent URL instead of opening a browser")
	authCmd.Flags().StringVar(&authFlags.backend, "backend", "", "token backend: file or database (default from OURA_TOKEN_BACKEND)")
	rootCmd.AddCommand(authCmd)
}
