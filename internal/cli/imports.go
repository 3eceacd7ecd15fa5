package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/msomdec/moviedb/internal/domain"
)

const maxListedFailures = 10

// Import maps the columns of a file onto movie fields and imports it.
// Ctrl-C while rows are being written cancels the rest of the import.
func (a *App) Import(ctx context.Context, args []string) error {
	path := strings.Join(args, " ")
	if path == "" {
		var err error
		if path, err = a.ask("File path: "); err != nil {
			return err
		}
	}

	columns, err := a.svc.Imports.InferColumns(path)
	if err != nil {
		return err
	}
	a.printf("Columns:\n")
	for i, c := range columns {
		a.printf("  %d. %s\n", i+1, c)
	}
	a.printf("Choose a column by name or number for each field. Enter keeps the suggestion, - skips the field.\n")

	mapping, err := a.readMapping(columns, a.svc.Imports.SuggestMapping(columns))
	if err != nil {
		return err
	}

	importCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	progress := func(done, total int) {
		a.printf("\rImported %d/%d rows", done, total)
	}
	summary, err := a.svc.Imports.ImportFile(importCtx, a.session, path, mapping, progress)
	if err != nil {
		return err
	}
	if summary.Total > 0 {
		a.printf("\n")
	}

	if summary.Cancelled {
		a.printf("Import cancelled. ")
	}
	a.printf("%d of %d rows imported, %d failed.\n", summary.Succeeded, summary.Total, summary.Failed)
	for i, f := range summary.Failures {
		if i == maxListedFailures {
			a.printf("  ... and %d more\n", len(summary.Failures)-maxListedFailures)
			break
		}
		a.printf("  row %d: %v\n", f.Row, f.Err)
	}
	return nil
}

func (a *App) readMapping(columns []string, suggested domain.ColumnMapping) (domain.ColumnMapping, error) {
	mapping := make(domain.ColumnMapping)
	for _, f := range domain.MovieFields {
		for {
			v, err := GetWithDefault(a.reader, string(f)+" column", suggested[f], a.out)
			if err != nil {
				return nil, err
			}
			if v == "" {
				break
			}
			col, err := resolveColumn(columns, v)
			if err != nil {
				a.printf("%v\n", err)
				continue
			}
			mapping[f] = col
			break
		}
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("%w: no columns selected", domain.ErrInvalidInput)
	}
	return mapping, nil
}

func resolveColumn(columns []string, v string) (string, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > len(columns) {
			return "", fmt.Errorf("no column number %d", n)
		}
		return columns[n-1], nil
	}
	for _, c := range columns {
		if strings.EqualFold(c, v) {
			return c, nil
		}
	}
	return "", errors.New("no column named " + strconv.Quote(v))
}

func (a *App) Imports(ctx context.Context) error {
	runs, err := a.svc.Imports.History(ctx, a.session)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		a.printf("No imports yet.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tSOURCE\tIMPORTED\tFAILED\tSTATUS")
	for _, r := range runs {
		status := "done"
		if r.Cancelled {
			status = "cancelled"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			r.CreatedAt.Local().Format("02/01/2006 15:04"), r.Source, r.Succeeded, r.Failed, status)
	}
	return tw.Flush()
}
