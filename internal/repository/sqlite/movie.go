package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/moviedb/internal/domain"
)

// movieRepo implements domain.MovieRepository using SQLite.
type movieRepo struct {
	db *sql.DB
}

const movieColumns = `id, user_id, COALESCE(title, ''), release_year, COALESCE(genre, ''),
	COALESCE(director, ''), COALESCE(actors, ''), imdb_rating, personal_rating,
	COALESCE(watch_date, ''), COALESCE(note, ''), created_at, updated_at`

// sortColumns whitelists the ORDER BY expressions; user input never
// reaches the query text.
var sortColumns = map[domain.SortKey]string{
	domain.SortTitle:          "title COLLATE NOCASE",
	domain.SortYear:           "release_year",
	domain.SortIMDBRating:     "imdb_rating",
	domain.SortPersonalRating: "personal_rating",
	domain.SortWatchDate:      "watch_date",
}

func (r *movieRepo) Create(ctx context.Context, m *domain.Movie) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (user_id, title, release_year, genre, director, actors,
		 imdb_rating, personal_rating, watch_date, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, nullString(m.Title), m.Year, nullString(m.Genre), nullString(m.Director),
		nullString(m.Actors), m.IMDBRating, m.PersonalRating, nullString(m.WatchDate),
		nullString(m.Note), now, now,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

func (r *movieRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Movie, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ? AND user_id = ?`, id, userID)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return m, nil
}

func (r *movieRepo) List(ctx context.Context, userID int64, q domain.MovieQuery) ([]domain.Movie, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + movieColumns + ` FROM movies WHERE user_id = ?`)
	args := []any{userID}

	if q.Genre != "" {
		sb.WriteString(` AND instr(` + casefoldFunc + `(genre), ?) > 0`)
		args = append(args, casefold(q.Genre))
	}

	sb.WriteString(" ORDER BY ")
	if col, ok := sortColumns[q.Sort]; ok {
		dir := "ASC"
		if q.Direction == domain.SortDesc {
			dir = "DESC"
		}
		sb.WriteString(col + " " + dir + ", ")
	} else if q.Sort != domain.SortNone {
		return nil, fmt.Errorf("%w: unknown sort key %q", domain.ErrInvalidInput, q.Sort)
	}
	sb.WriteString("id ASC")

	return r.query(ctx, sb.String(), args...)
}

func (r *movieRepo) FindByTitle(ctx context.Context, userID int64, title string) ([]domain.Movie, error) {
	return r.query(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE user_id = ? AND title = ? ORDER BY id`,
		userID, title)
}

func (r *movieRepo) Update(ctx context.Context, m *domain.Movie) error {
	now := time.Now().UTC()
	n, err := r.update(ctx, "id = ? AND user_id = ?", m, now, m.ID, m.UserID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	m.UpdatedAt = now
	return nil
}

func (r *movieRepo) UpdateByTitle(ctx context.Context, userID int64, title string, m *domain.Movie) (int64, error) {
	n, err := r.update(ctx, "title = ? AND user_id = ?", m, time.Now().UTC(), title, userID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}

func (r *movieRepo) Delete(ctx context.Context, userID, id int64) error {
	n, err := r.delete(ctx, "id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *movieRepo) DeleteByTitle(ctx context.Context, userID int64, title string) (int64, error) {
	n, err := r.delete(ctx, "title = ? AND user_id = ?", title, userID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, domain.ErrNotFound
	}
	return n, nil
}

func (r *movieRepo) update(ctx context.Context, where string, m *domain.Movie, now time.Time, whereArgs ...any) (int64, error) {
	args := []any{
		nullString(m.Title), m.Year, nullString(m.Genre), nullString(m.Director),
		nullString(m.Actors), m.IMDBRating, m.PersonalRating, nullString(m.WatchDate),
		nullString(m.Note), now,
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE movies SET title = ?, release_year = ?, genre = ?, director = ?, actors = ?,
		 imdb_rating = ?, personal_rating = ?, watch_date = ?, note = ?, updated_at = ?
		 WHERE `+where,
		append(args, whereArgs...)...,
	)
	if err != nil {
		return 0, fmt.Errorf("update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return rows, nil
}

func (r *movieRepo) delete(ctx context.Context, where string, args ...any) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return rows, nil
}

func (r *movieRepo) query(ctx context.Context, query string, args ...any) ([]domain.Movie, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []domain.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(s rowScanner) (*domain.Movie, error) {
	var (
		m        domain.Movie
		year     sql.NullInt64
		imdb     sql.NullFloat64
		personal sql.NullFloat64
	)
	if err := s.Scan(&m.ID, &m.UserID, &m.Title, &year, &m.Genre, &m.Director, &m.Actors,
		&imdb, &personal, &m.WatchDate, &m.Note, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if year.Valid {
		y := int(year.Int64)
		m.Year = &y
	}
	if imdb.Valid {
		m.IMDBRating = &imdb.Float64
	}
	if personal.Valid {
		m.PersonalRating = &personal.Float64
	}
	return &m, nil
}

// nullString stores empty text as NULL so unmapped import fields stay absent.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
