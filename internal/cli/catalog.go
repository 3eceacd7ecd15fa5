package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/msomdec/moviedb/internal/domain"
)

const maxCatalogResults = 50

// Catalog searches the reference catalog by title. The catalog file is
// read on first use.
func (a *App) Catalog(ctx context.Context, args []string) error {
	if a.catalog == nil {
		entries, err := a.svc.Catalog.Load(ctx)
		if err != nil {
			return err
		}
		a.catalog = entries
	}

	results := a.svc.Catalog.Search(a.catalog, strings.Join(args, " "))
	if len(results) > maxCatalogResults {
		results = results[:maxCatalogResults]
	}
	a.lastResults = results
	if len(results) == 0 {
		a.printf("No catalog entries match.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tYEAR\tGENRE\tDIRECTOR\tIMDB")
	for i, e := range results {
		year := intText(e.Year)
		if year == "" {
			year = e.YearText
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, e.Title, year, e.Genre, e.Director, ratingText(e.Rating))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("Use copy <#> to add an entry to your list.\n")
	return nil
}

// Copy opens the movie form prefilled from an entry of the last catalog
// search and adds the result to the movie list.
func (a *App) Copy(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: copy <#>", domain.ErrInvalidInput)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(a.lastResults) {
		return fmt.Errorf("%w: %q is not a result number from the last catalog search", domain.ErrInvalidInput, args[0])
	}

	m, err := a.readMovie(a.svc.Catalog.ToMovieDraft(a.lastResults[n-1]))
	if err != nil {
		return err
	}
	if err := a.svc.Movies.Create(ctx, a.session, &m); err != nil {
		return err
	}
	a.printf("Added %q (id %d).\n", m.Title, m.ID)
	return nil
}
