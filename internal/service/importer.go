package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/msomdec/moviedb/internal/domain"
	"github.com/msomdec/moviedb/internal/tabular"
)

// ProgressFunc is called after each processed row.
type ProgressFunc func(done, total int)

// ImportService loads movies from CSV and spreadsheet files into the
// session user's list.
type ImportService struct {
	movies  domain.MovieRepository
	runs    domain.ImportRunRepository
	lenient bool
}

// NewImportService creates a new ImportService. When lenient is set,
// cells that fail to parse are stored as empty instead of failing the row.
func NewImportService(movies domain.MovieRepository, runs domain.ImportRunRepository, lenient bool) *ImportService {
	return &ImportService{movies: movies, runs: runs, lenient: lenient}
}

// InferColumns returns the header of the file at path.
func (s *ImportService) InferColumns(path string) ([]string, error) {
	t, err := tabular.Open(path)
	if err != nil {
		return nil, err
	}
	return t.Columns, nil
}

var fieldAliases = map[domain.MovieField][]string{
	domain.FieldTitle:          {"title", "seriestitle", "movietitle", "moviename", "name", "film"},
	domain.FieldYear:           {"year", "releasedyear", "releaseyear", "released"},
	domain.FieldGenre:          {"genre", "genres"},
	domain.FieldDirector:       {"director", "directors", "directedby"},
	domain.FieldActors:         {"actors", "cast", "stars", "starring"},
	domain.FieldIMDBRating:     {"imdbrating", "imdb", "imdbscore"},
	domain.FieldPersonalRating: {"personalrating", "myrating", "yourrating", "rating"},
	domain.FieldWatchDate:      {"watchdate", "datewatched", "watched", "watchedon", "dateviewed"},
	domain.FieldNote:           {"note", "notes", "comment", "comments", "review"},
}

// SuggestMapping guesses a column for each movie field from the header
// names. A column is suggested for at most one field.
func (s *ImportService) SuggestMapping(columns []string) domain.ColumnMapping {
	byKey := make(map[string]string, len(columns))
	for _, c := range columns {
		k := normalizeHeader(c)
		if _, ok := byKey[k]; !ok && k != "" {
			byKey[k] = c
		}
	}

	mapping := make(domain.ColumnMapping)
	used := make(map[string]bool)
	for _, f := range domain.MovieFields {
		for _, alias := range fieldAliases[f] {
			if c, ok := byKey[alias]; ok && !used[c] {
				mapping[f] = c
				used[c] = true
				break
			}
		}
	}
	return mapping
}

func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ImportFile opens path and imports it with Import.
func (s *ImportService) ImportFile(ctx context.Context, sess *domain.Session, path string, mapping domain.ColumnMapping, progress ProgressFunc) (*domain.ImportSummary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	t, err := tabular.Open(path)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, sess, filepath.Base(path), t, mapping, progress)
}

// Import inserts one movie per table row. Each row is stored on its own,
// so rows that fail do not affect the others. Cancelling ctx stops the
// import before the next row; rows already stored are kept.
func (s *ImportService) Import(ctx context.Context, sess *domain.Session, source string, t *tabular.Table, mapping domain.ColumnMapping, progress ProgressFunc) (*domain.ImportSummary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	resolved := make(domain.ColumnMapping, len(mapping))
	for f, col := range mapping {
		if col == "" {
			continue
		}
		if t.Index(col) < 0 {
			slog.Warn("import column not found", "field", f, "column", col, "source", source)
			continue
		}
		resolved[f] = col
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: no mapped column exists in %s", domain.ErrInvalidInput, source)
	}

	summary := &domain.ImportSummary{
		RunID: uuid.NewString(),
		Total: len(t.Rows),
	}
	// Rows are written without cancellation so a row is either fully
	// stored or never attempted.
	writeCtx := context.WithoutCancel(ctx)

	for i, row := range t.Rows {
		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}

		if err := s.importRow(writeCtx, sess.UserID, t, row, resolved); err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, domain.RowFailure{Row: i + 1, Err: err})
		} else {
			summary.Succeeded++
		}

		if progress != nil {
			progress(i+1, summary.Total)
		}
	}

	run := &domain.ImportRun{
		ID:        summary.RunID,
		UserID:    sess.UserID,
		Source:    source,
		Succeeded: summary.Succeeded,
		Failed:    summary.Failed,
		Cancelled: summary.Cancelled,
	}
	if err := s.runs.Create(writeCtx, run); err != nil {
		slog.Error("failed to record import run", "run_id", run.ID, "error", err)
	}

	slog.Info("import finished", "run_id", summary.RunID, "user_id", sess.UserID, "source", source,
		"succeeded", summary.Succeeded, "failed", summary.Failed, "cancelled", summary.Cancelled)
	return summary, nil
}

func (s *ImportService) importRow(ctx context.Context, userID int64, t *tabular.Table, row []string, mapping domain.ColumnMapping) error {
	m, err := s.buildMovie(t, row, mapping)
	if err != nil {
		return err
	}
	m.UserID = userID
	if err := s.movies.Create(ctx, m); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrImportRow, err)
	}
	return nil
}

func (s *ImportService) buildMovie(t *tabular.Table, row []string, mapping domain.ColumnMapping) (*domain.Movie, error) {
	cell := func(f domain.MovieField) string {
		col, ok := mapping[f]
		if !ok {
			return ""
		}
		return t.Value(row, col)
	}

	m := &domain.Movie{
		Title:    cell(domain.FieldTitle),
		Genre:    cell(domain.FieldGenre),
		Director: cell(domain.FieldDirector),
		Actors:   cell(domain.FieldActors),
		Note:     cell(domain.FieldNote),
	}
	if _, ok := mapping[domain.FieldTitle]; ok && m.Title == "" {
		return nil, fmt.Errorf("%w: title is empty", domain.ErrImportRow)
	}

	var errs []error
	year := CoerceYear(cell(domain.FieldYear))
	if err := s.check(domain.FieldYear, year.State, year.Raw); err != nil {
		errs = append(errs, err)
	}
	m.Year = year.Ptr()

	imdb := CoerceRating(cell(domain.FieldIMDBRating))
	if err := s.check(domain.FieldIMDBRating, imdb.State, imdb.Raw); err != nil {
		errs = append(errs, err)
	}
	m.IMDBRating = imdb.Ptr()

	personal := CoerceRating(cell(domain.FieldPersonalRating))
	if err := s.check(domain.FieldPersonalRating, personal.State, personal.Raw); err != nil {
		errs = append(errs, err)
	}
	m.PersonalRating = personal.Ptr()

	watched := CoerceDate(cell(domain.FieldWatchDate))
	if err := s.check(domain.FieldWatchDate, watched.State, watched.Raw); err != nil {
		errs = append(errs, err)
	}
	m.WatchDate = watched.Value

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrImportRow, errors.Join(errs...))
	}
	return m, nil
}

func (s *ImportService) check(f domain.MovieField, state CoercionState, raw string) error {
	if state != Invalid || s.lenient {
		return nil
	}
	return fmt.Errorf("%s: cannot parse %q", f, raw)
}

// History lists the session user's past imports, newest first.
func (s *ImportService) History(ctx context.Context, sess *domain.Session) ([]domain.ImportRun, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.runs.ListByUser(ctx, sess.UserID)
}
