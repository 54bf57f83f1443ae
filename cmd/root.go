package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/config"
	"github.com/lukman83/showcase/internal/api"
	"github.com/lukman83/showcase/internal/app"
	"github.com/lukman83/showcase/internal/logging"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Showcase - storefront admin CLI & MCP server",
	Long: "A CLI and MCP server for a product showcase storefront: featured positions, " +
		"catalog administration, hero carousel preview and page translation.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
		if api.IsUnauthorized(err) {
			fmt.Fprintln(os.Stderr, "Your session has expired. Run `showcase login` to sign in again.")
		}
		os.Exit(1)
	}
}

// errorMessage prefers the display message of an API error.
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Storefront API base URL (default from $SHOWCASE_API_URL)")
	rootCmd.PersistentFlags().String("lang", "", "UI language: zh or en")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("provider", "", "Translation provider: mymemory, google, baidu")
	rootCmd.PersistentFlags().String("featured-api", "", "Featured products API: legacy, multilingual")
	rootCmd.PersistentFlags().String("state-file", "", "Path of the session state file")
}

func initConfig(cmd *cobra.Command) error {
	cfg = config.DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}

	// Override from flags
	flags := cmd.Flags()
	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.APIBaseURL = v
	}
	if v, _ := flags.GetString("lang"); v != "" {
		cfg.Language = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("provider"); v != "" {
		cfg.TranslateProvider = v
	}
	if v, _ := flags.GetString("featured-api"); v != "" {
		cfg.FeaturedAPI = v
	}
	if v, _ := flags.GetString("state-file"); v != "" {
		cfg.StateFile = v
	}

	logger = logging.New(os.Stderr, cfg.LogLevel)
	return nil
}

// newApp builds the services for one command run. The caller closes it.
func newApp(ctx context.Context, opts app.Options) (*app.App, error) {
	a, err := app.New(ctx, cfg, logger, opts)
	if err != nil {
		return nil, err
	}
	// an explicit --lang wins over the stored preference for this run
	if lang, _ := rootCmd.PersistentFlags().GetString("lang"); lang != "" {
		if _, err := a.SetLanguage(lang); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

// withApp runs fn with a fresh App and closes it afterwards.
func withApp(cmd *cobra.Command, opts app.Options, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}()
	return fn(ctx, a)
}
