package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Movie is one entry in a user's personal watch list.
type Movie struct {
	ID             int64
	UserID         int64
	Title          string
	Year           *int
	Genre          string
	Director       string
	Actors         string // Comma-joined
	IMDBRating     *float64
	PersonalRating *float64
	WatchDate      string // ISO YYYY-MM-DD, empty when unknown
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the fields a user can enter by hand.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if m.Year != nil && *m.Year <= 0 {
		return fmt.Errorf("%w: year must be positive", ErrInvalidInput)
	}
	if m.IMDBRating != nil && !ValidRating(*m.IMDBRating) {
		return fmt.Errorf("%w: IMDB rating must be between 0 and 10", ErrInvalidInput)
	}
	if m.PersonalRating != nil && !ValidRating(*m.PersonalRating) {
		return fmt.Errorf("%w: personal rating must be between 0 and 10", ErrInvalidInput)
	}
	return nil
}

// ValidRating reports whether r lies on the 0-10 rating scale.
func ValidRating(r float64) bool {
	return r >= 0 && r <= 10
}

// SortKey names a field the movie list can be ordered by.
type SortKey string

const (
	SortNone           SortKey = ""
	SortTitle          SortKey = "title"
	SortYear           SortKey = "year"
	SortIMDBRating     SortKey = "imdb_rating"
	SortPersonalRating SortKey = "personal_rating"
	SortWatchDate      SortKey = "watch_date"
)

// ParseSortKey validates a user supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortTitle, SortYear, SortIMDBRating, SortPersonalRating, SortWatchDate:
		return k, nil
	}
	return SortNone, fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, s)
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// MovieQuery selects and orders a user's movies. The zero value lists
// everything in insertion order.
type MovieQuery struct {
	Genre     string // Case-insensitive substring
	Sort      SortKey
	Direction SortDirection
}

// MovieRepository defines persistence operations for movies. All
// operations are scoped to a user.
type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetByID(ctx context.Context, userID, id int64) (*Movie, error)
	List(ctx context.Context, userID int64, q MovieQuery) ([]Movie, error)
	FindByTitle(ctx context.Context, userID int64, title string) ([]Movie, error)
	Update(ctx context.Context, movie *Movie) error
	// UpdateByTitle overwrites every movie of the user whose title equals
	// title exactly. Returns the number of rows changed.
	UpdateByTitle(ctx context.Context, userID int64, title string, movie *Movie) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
	// DeleteByTitle removes every movie of the user whose title equals
	// title exactly. Returns the number of rows removed.
	DeleteByTitle(ctx context.Context, userID int64, title string) (int64, error)
}
