package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/moviedb/internal/domain"
)

// MovieService manages the movie list of the session user.
type MovieService struct {
	movies domain.MovieRepository
}

// NewMovieService creates a new MovieService.
func NewMovieService(movies domain.MovieRepository) *MovieService {
	return &MovieService{movies: movies}
}

// List returns the user's movies filtered by genre and ordered by q.Sort.
func (s *MovieService) List(ctx context.Context, sess *domain.Session, q domain.MovieQuery) ([]domain.Movie, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	q.Genre = strings.TrimSpace(q.Genre)
	if q.Direction != domain.SortDesc {
		q.Direction = domain.SortAsc
	}
	return s.movies.List(ctx, sess.UserID, q)
}

func (s *MovieService) Get(ctx context.Context, sess *domain.Session, id int64) (*domain.Movie, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.movies.GetByID(ctx, sess.UserID, id)
}

// FindByTitle returns every movie of the user titled exactly title.
func (s *MovieService) FindByTitle(ctx context.Context, sess *domain.Session, title string) ([]domain.Movie, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.movies.FindByTitle(ctx, sess.UserID, title)
}

// Create validates and stores a new movie for the session user.
func (s *MovieService) Create(ctx context.Context, sess *domain.Session, movie *domain.Movie) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := movie.Validate(); err != nil {
		return err
	}

	movie.UserID = sess.UserID
	if err := s.movies.Create(ctx, movie); err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

// Update overwrites the movie identified by movie.ID.
func (s *MovieService) Update(ctx context.Context, sess *domain.Session, movie *domain.Movie) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if err := movie.Validate(); err != nil {
		return err
	}

	movie.UserID = sess.UserID
	return s.movies.Update(ctx, movie)
}

// UpdateByTitle overwrites every movie titled matchTitle. With duplicate
// titles all of them receive the same values.
func (s *MovieService) UpdateByTitle(ctx context.Context, sess *domain.Session, matchTitle string, movie *domain.Movie) (int64, error) {
	if err := requireSession(sess); err != nil {
		return 0, err
	}
	if err := movie.Validate(); err != nil {
		return 0, err
	}
	return s.movies.UpdateByTitle(ctx, sess.UserID, matchTitle, movie)
}

func (s *MovieService) Delete(ctx context.Context, sess *domain.Session, id int64) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return s.movies.Delete(ctx, sess.UserID, id)
}

// DeleteByTitle removes every movie titled matchTitle and reports how many
// were removed.
func (s *MovieService) DeleteByTitle(ctx context.Context, sess *domain.Session, matchTitle string) (int64, error) {
	if err := requireSession(sess); err != nil {
		return 0, err
	}
	return s.movies.DeleteByTitle(ctx, sess.UserID, matchTitle)
}

func requireSession(sess *domain.Session) error {
	if sess == nil || sess.UserID == 0 {
		return domain.ErrUnauthorized
	}
	return nil
}
