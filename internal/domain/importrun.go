package domain

import (
	"context"
	"time"
)

// MovieField identifies a Movie field that an import column can map onto.
type MovieField string

const (
	FieldTitle          MovieField = "title"
	FieldYear           MovieField = "year"
	FieldGenre          MovieField = "genre"
	FieldDirector       MovieField = "director"
	FieldActors         MovieField = "actors"
	FieldIMDBRating     MovieField = "imdb_rating"
	FieldPersonalRating MovieField = "personal_rating"
	FieldWatchDate      MovieField = "watch_date"
	FieldNote           MovieField = "note"
)

// MovieFields lists the mappable fields in display order.
var MovieFields = []MovieField{
	FieldTitle, FieldYear, FieldGenre, FieldDirector, FieldActors,
	FieldIMDBRating, FieldPersonalRating, FieldWatchDate, FieldNote,
}

// ColumnMapping maps movie fields to source column names. Fields without
// an entry are left empty on imported rows.
type ColumnMapping map[MovieField]string

// RowFailure records why a single source row was not imported.
type RowFailure struct {
	Row int // 1-based data row, header excluded
	Err error
}

// ImportSummary reports the outcome of one import.
type ImportSummary struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Cancelled bool
	Failures  []RowFailure
}

// ImportRun is the persisted record of an import attempt.
type ImportRun struct {
	ID        string
	UserID    int64
	Source    string
	Succeeded int
	Failed    int
	Cancelled bool
	CreatedAt time.Time
}

type ImportRunRepository interface {
	Create(ctx context.Context, run *ImportRun) error
	ListByUser(ctx context.Context, userID int64) ([]ImportRun, error)
}
