package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukman83/showcase/internal/app"
	"github.com/lukman83/showcase/internal/featured"
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Manage the six featured product positions",
}

var featuredPositionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Show which product occupies each position",
	RunE:  runFeaturedPositions,
}

var featuredListCmd = &cobra.Command{
	Use:   "list",
	Short: "List featured product records",
	RunE:  runFeaturedList,
}

var featuredSetCmd = &cobra.Command{
	Use:   "set [position] [product-id]",
	Short: "Put a product in a position",
	Args:  cobra.ExactArgs(2),
	RunE:  runFeaturedSet,
}

var featuredRemoveCmd = &cobra.Command{
	Use:   "remove [position]",
	Short: "Clear a position",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeaturedRemove,
}

func init() {
	featuredRemoveCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	featuredCmd.AddCommand(featuredPositionsCmd, featuredListCmd, featuredSetCmd, featuredRemoveCmd)
	rootCmd.AddCommand(featuredCmd)
}

func runFeaturedPositions(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		slots, err := a.Featured.LoadPositions(ctx)
		if err != nil {
			return err
		}
		printPositions(cmd.OutOrStdout(), slots)
		return nil
	})
}

func runFeaturedList(cmd *cobra.Command, args []string) error {
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		records, err := a.Featured.List(ctx)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No featured products.")
			return nil
		}
		tw := newTable(cmd.OutOrStdout())
		fmt.Fprintln(tw, "RECORD\tPOSITION\tPRODUCT\tNAME\tACTIVE")
		for _, r := range records {
			name := "-"
			if r.Product != nil {
				name = truncate(r.Product.DisplayName(a.Language()), 40)
			}
			fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", r.ID, r.Position, r.ProductID, name, yesNo(r.IsActive))
		}
		return tw.Flush()
	})
}

func runFeaturedSet(cmd *cobra.Command, args []string) error {
	position, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	productID, err := parseID(args[1])
	if err != nil {
		return err
	}
	return withApp(cmd, app.Options{}, func(ctx context.Context, a *app.App) error {
		if err := a.Featured.SetProduct(ctx, productID, position); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Position %d now shows product %d.\n", position, productID)
		printPositions(cmd.OutOrStdout(), a.Featured.Positions())
		return nil
	})
}

func runFeaturedRemove(cmd *cobra.Command, args []string) error {
	position, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	var confirm featured.ConfirmFunc
	if !yes {
		confirm = promptConfirm(cmd)
	}
	return withApp(cmd, app.Options{Confirm: confirm}, func(ctx context.Context, a *app.App) error {
		err := a.Featured.RemovePosition(ctx, position)
		if errors.Is(err, featured.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Position %d cleared.\n", position)
		return nil
	})
}

// promptConfirm asks a y/N question on stderr and reads the answer from stdin.
func promptConfirm(cmd *cobra.Command) featured.ConfirmFunc {
	return func(ctx context.Context, prompt string) (bool, error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// parsePosition only checks that s is a number. The backend owns the
// valid range and its message is shown as is.
func parsePosition(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return p, nil
}
