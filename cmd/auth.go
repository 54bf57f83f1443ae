package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lukman83/showcase/internal/app"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in as an administrator",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear cached admin data",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in administrator",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringP("username", "u", "", "Admin username")
	loginCmd.Flags().Bool("password-stdin", false, "Read the password from stdin")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	fromStdin, _ := cmd.Flags().GetBool("password-stdin")

	in := bufio.NewReader(cmd.InOrStdin())
	if username == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	password, err := readPassword(cmd, in, fromStdin)
	if err != nil {
		return err
	}

	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if err := a.Login(ctx, username, password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", username)
		return nil
	})
}

// readPassword prompts without echo on a terminal and reads a line otherwise.
func readPassword(cmd *cobra.Command, in *bufio.Reader, fromStdin bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if !fromStdin && term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if err := a.Logout(ctx); err != nil {
			logger.Warn("logout request failed; local session cleared anyway", "error", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	})
}

func runWhoami(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if !a.API.IsAuthenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		admin, err := a.API.CurrentAdmin(ctx)
		if err != nil {
			return err
		}
		role := "admin"
		if admin.IsSuperuser {
			role = "superuser"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, id %d)\n", admin.Username, role, admin.ID)
		if !admin.LastLogin.IsZero() {
			fmt.Fprintf(cmd.OutOrStdout(), "Last login: %s\n", admin.LastLogin.Format("2006-01-02 15:04"))
		}
		return nil
	})
}
