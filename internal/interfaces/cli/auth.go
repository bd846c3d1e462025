package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/erp/ausyexpo/internal/infrastructure/auth"
)

func (c *console) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored session token",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-token <token>",
		Short: "Store the bearer token used by later runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Tokens.Save(cmd.Context(), args[0]); err != nil {
				return err
			}
			s := auth.NewSession(args[0])
			if s.Expired(time.Now()) {
				fmt.Fprintln(c.streams.Err, "Warning: this token has already expired")
			}
			fmt.Fprintf(c.streams.Err, "Token saved to %s\n", c.app.Tokens.Path())
			return nil
		},
	}, &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity carried by the current token",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			s := c.app.Session
			if s == nil || s.Anonymous() {
				c.out.line("Not signed in. Use 'console auth set-token <token>'.")
				return nil
			}
			claims := s.Claims()
			info := map[string]any{
				"jwt":     s.IsJWT(),
				"subject": claims.Subject,
				"email":   claims.Email,
				"role":    claims.Role,
				"userId":  claims.UserID,
				"expired": s.Expired(time.Now()),
			}
			if !claims.ExpiresAt.IsZero() {
				info["expiresAt"] = claims.ExpiresAt.Format(time.RFC3339)
			}
			return c.out.value(info)
		},
	}, &cobra.Command{
		Use:   "clear",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Tokens.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.streams.Err, "Token cleared")
			return nil
		},
	})
	return cmd
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
