package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/pysugar/oura-scraper/internal/auth/token"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect or manage the stored OAuth tokens.",
}

var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether usable tokens exist and when they expire.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			out := cmd.OutOrStdout()
			p, err := a.store.Load(cmd.Context())
			if errors.Is(err, token.ErrNoTokens) {
				fmt.Fprintf(out, "No tokens stored (%s backend); %s.\n", a.settings.TokenBackend, reauthHint)
				return nil
			}
			if err != nil {
				return err
			}

			state := "valid"
			if p.Expired() {
				state = "expired, will refresh on next use"
			}
			fmt.Fprintf(out, "Backend:      %s\n", a.settings.TokenBackend)
			fmt.Fprintf(out, "Access token: %s\n", token.Mask(p.AccessToken))
			fmt.Fprintf(out, "Expires at:   %s (%s)\n", p.ExpiresAt.Local().Format(time.RFC3339), state)
			return nil
		})
	},
}

var tokenRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Redeem the stored refresh token for a new pair.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.settings.RequireClient(); err != nil {
				return err
			}
			p, err := a.manager.Refresh(cmd.Context(), "")
			if err != nil {
				if token.NeedsReauthorization(err) {
					return fmt.Errorf("%w; %s", err, reauthHint)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Refreshed; access token valid until %s.\n", p.ExpiresAt.Local().Format(time.RFC3339))
			return nil
		})
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored tokens.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if err := a.manager.Forget(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tokens cleared from the %s backend.\n", a.settings.TokenBackend)
			return nil
		})
	},
}

func withApp(fn func(*app) error) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	a, err := newApp(s, false)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func init() {
	tokenCmd.AddCommand(tokenStatusCmd, tokenRefreshCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}
