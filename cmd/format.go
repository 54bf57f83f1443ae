package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lukman83/showcase/internal/featured"
	"github.com/lukman83/showcase/internal/models"
)

// newTable returns a tabwriter for aligned columns on w.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// printCategories prints categories as a table.
func printCategories(w io.Writer, cats []models.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tNAME (EN)\tSORT\tACTIVE")
	for _, c := range cats {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", c.ID, truncate(c.Name, 30), truncate(c.NameEN, 30), c.SortOrder, yesNo(c.IsActive))
	}
	tw.Flush()
}

// printProductsTable prints a product page with its pagination footer.
func printProductsTable(w io.Writer, page *models.ProductPage, lang string) {
	if page == nil || len(page.Items) == 0 {
		fmt.Fprintln(w, "No products found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tFEATURED\tACTIVE")
	for _, p := range page.Items {
		price := formatPrice(p.Price)
		if p.OriginalPrice > p.Price {
			price += " (was " + formatPrice(p.OriginalPrice) + ")"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, truncate(p.DisplayName(lang), 40), price, p.Quantity(), yesNo(p.IsFeatured), yesNo(p.IsActive))
	}
	tw.Flush()

	pg := page.Pagination
	if pg.Pages > 0 {
		fmt.Fprintf(w, "\nPage %d of %d (%d products)\n", pg.Page, pg.Pages, pg.Total)
	}
}

// printPositions prints the six featured slots.
func printPositions(w io.Writer, slots []featured.Slot) {
	tw := newTable(w)
	fmt.Fprintln(tw, "POSITION\tSTATE\tPRODUCT\tRECORD")
	for _, s := range slots {
		if s.Record == nil {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\n", s.Position, s.State)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t#%d %s\t%d\n", s.Position, s.State, s.Record.ProductID, truncate(s.Record.ProductName, 40), s.Record.ID)
	}
	tw.Flush()
}

// formatPrice formats a price as "¥1,234.50".
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)

	out := "¥" + strings.Join(parts, ",") + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
