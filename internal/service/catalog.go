package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/moviedb/internal/domain"
	"github.com/msomdec/moviedb/internal/tabular"
)

const (
	colSeriesTitle  = "Series_Title"
	colReleasedYear = "Released_Year"
	colGenre        = "Genre"
	colDirector     = "Director"
	colIMDBRating   = "IMDB_Rating"
)

var starColumns = []string{"Star1", "Star2", "Star3", "Star4"}

// CatalogService reads the reference top-movies catalog.
type CatalogService struct {
	path string
}

func NewCatalogService(path string) *CatalogService {
	return &CatalogService{path: path}
}

// Load parses the catalog file. Year and rating cells that are not numbers
// are kept as nil rather than failing the load.
func (s *CatalogService) Load(ctx context.Context) ([]domain.CatalogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := tabular.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	required := append([]string{colSeriesTitle, colReleasedYear, colGenre, colDirector, colIMDBRating}, starColumns...)
	for _, c := range required {
		if t.Index(c) < 0 {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrCatalogUnavailable, c)
		}
	}

	entries := make([]domain.CatalogEntry, 0, len(t.Rows))
	for _, row := range t.Rows {
		yearText := t.Value(row, colReleasedYear)
		entry := domain.CatalogEntry{
			Title:    t.Value(row, colSeriesTitle),
			Year:     CoerceYear(yearText).Ptr(),
			YearText: yearText,
			Genre:    t.Value(row, colGenre),
			Director: t.Value(row, colDirector),
			Rating:   CoerceRating(t.Value(row, colIMDBRating)).Ptr(),
		}

		stars := make([]string, 0, len(starColumns))
		for _, c := range starColumns {
			if v := t.Value(row, c); v != "" {
				stars = append(stars, v)
			}
		}
		entry.Actors = strings.Join(stars, ", ")

		entries = append(entries, entry)
	}

	slog.Debug("catalog loaded", "path", s.path, "entries", len(entries))
	return entries, nil
}

// Search returns the entries whose title contains query, ignoring case.
func (s *CatalogService) Search(entries []domain.CatalogEntry, query string) []domain.CatalogEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []domain.CatalogEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) {
			out = append(out, e)
		}
	}
	return out
}

// ToMovieDraft prefills a movie from a catalog entry.
func (s *CatalogService) ToMovieDraft(e domain.CatalogEntry) domain.Movie {
	zero := 0.0
	return domain.Movie{
		Title:          e.Title,
		Year:           e.Year,
		Genre:          e.Genre,
		Director:       e.Director,
		Actors:         e.Actors,
		IMDBRating:     e.Rating,
		PersonalRating: &zero,
		Note:           domain.CatalogNote,
	}
}
