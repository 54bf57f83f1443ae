package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lukman83/showcase/internal/app"
	"github.com/lukman83/showcase/internal/page"
	"github.com/lukman83/showcase/internal/progress"
	"github.com/lukman83/showcase/internal/translator"
	"github.com/lukman83/showcase/internal/ui"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Machine-translate text and storefront pages",
}

var translateTextCmd = &cobra.Command{
	Use:   "text [text...]",
	Short: "Translate text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslateText,
}

var translatePageCmd = &cobra.Command{
	Use:   "page [file]",
	Short: "Translate an HTML page (reads stdin when no file is given)",
	Long: "Translate the visible texts of an HTML page. Without --to the saved " +
		"auto-translate language is used. Translating to zh restores the original texts.",
	Args: cobra.MaximumNArgs(1),
	RunE: runTranslatePage,
}

var translateLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List auto-translate languages",
	RunE:  runTranslateLanguages,
}

var i18nCmd = &cobra.Command{
	Use:   "i18n [key...]",
	Short: "Look up static UI messages",
	Long:  "Look up static UI messages. Without keys every key of the UI language is listed.",
	RunE:  runI18n,
}

func init() {
	translateTextCmd.Flags().StringP("to", "t", "en", "Target language")

	translatePageCmd.Flags().StringP("to", "t", "", "Target language")
	translatePageCmd.Flags().StringP("output", "o", "", "Write the page to a file instead of stdout")
	translatePageCmd.Flags().Bool("static", false, "Apply the static UI catalog for the UI language first")
	translatePageCmd.Flags().Bool("no-save", false, "Do not remember the target language")

	translateCmd.AddCommand(translateTextCmd, translatePageCmd, translateLanguagesCmd)
	rootCmd.AddCommand(translateCmd, i18nCmd)
}

func runTranslateText(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	if !translator.IsSupported(to) {
		return fmt.Errorf("%w: %q", translator.ErrUnsupportedLanguage, to)
	}
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		results := a.Translator.TranslateBatch(ctx, args, to)
		for _, r := range results {
			if r.Err != nil {
				return r.Err
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Translated)
		}
		return nil
	})
}

func runTranslatePage(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	output, _ := cmd.Flags().GetString("output")
	static, _ := cmd.Flags().GetBool("static")
	noSave, _ := cmd.Flags().GetBool("no-save")

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open page: %w", err)
		}
		defer f.Close()
		in = f
	}
	doc, err := page.Parse(in)
	if err != nil {
		return err
	}

	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if static {
			sr := doc.ApplyStatic(a.Localizer())
			logger.Debug("static catalog applied", "lang", a.Language(), "texts", sr.Texts, "placeholders", sr.Placeholders, "alts", sr.Alts)
		}

		showSpinner := term.IsTerminal(int(os.Stderr.Fd()))
		spinner := ui.NewSpinner(cmd.ErrOrStderr())
		if showSpinner {
			spinner.Start("Translating page...")
			ctx = progress.With(ctx, spinner.Update)
		}

		var (
			report translator.Report
			err    error
		)
		switch {
		case to == "" && !noSave:
			var resumed bool
			report, resumed, err = a.Switcher.Resume(ctx, doc)
			if err == nil && !resumed {
				logger.Info("no saved translate language, page left as is")
			}
		case noSave:
			if to == "" {
				to = a.Translator.SourceLanguage()
			}
			if !translator.IsSupported(to) {
				err = fmt.Errorf("%w: %q", translator.ErrUnsupportedLanguage, to)
				break
			}
			if to == a.Translator.SourceLanguage() {
				report = translator.Report{Language: to, Restored: doc.Restore()}
				break
			}
			report = a.Translator.TranslateDocument(ctx, doc, to, a.Config.MaxTextLength)
		default:
			report, err = a.Switcher.Switch(ctx, doc, to)
		}
		if showSpinner {
			spinner.Stop()
		}
		if err != nil {
			return err
		}
		if report.Failed > 0 {
			logger.Warn("some elements were not translated", "failed", report.Failed, "collected", report.Collected)
		}
		logger.Info("page translated",
			"lang", report.Language,
			"applied", report.Applied,
			"unchanged", report.Unchanged,
			"failed", report.Failed,
			"restored", report.Restored,
		)

		out := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		return doc.Render(out)
	})
}

func runTranslateLanguages(cmd *cobra.Command, args []string) error {
	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "CODE\tNAME")
	for _, l := range translator.Languages {
		fmt.Fprintf(tw, "%s\t%s\n", l.Code, l.Name)
	}
	return tw.Flush()
}

func runI18n(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		l := a.Localizer()
		keys := args
		if len(keys) == 0 {
			keys = a.Messages.Keys(l.Language())
		}
		tw := newTable(cmd.OutOrStdout())
		for _, k := range keys {
			msg, ok := l.Lookup(k)
			if !ok {
				msg = "(missing)"
			}
			fmt.Fprintf(tw, "%s\t%s\n", k, strings.TrimSpace(msg))
		}
		return tw.Flush()
	})
}
