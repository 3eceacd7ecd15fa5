package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/msomdec/moviedb/internal/domain"
	"github.com/msomdec/moviedb/internal/service"
)

// List prints the movie list. Arguments are genre=<text>, sort=<key>,
// desc and asc in any order.
func (a *App) List(ctx context.Context, args []string) error {
	q, err := parseListArgs(args)
	if err != nil {
		return err
	}
	movies, err := a.svc.Movies.List(ctx, a.session, q)
	if err != nil {
		return err
	}
	if len(movies) == 0 {
		a.printf("No movies.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tGENRE\tDIRECTOR\tIMDB\tMINE\tWATCHED")
	for _, m := range movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.Title, intText(m.Year), m.Genre, m.Director,
			ratingText(m.IMDBRating), ratingText(m.PersonalRating), domain.ISOToDisplay(m.WatchDate))
	}
	return tw.Flush()
}

func parseListArgs(args []string) (domain.MovieQuery, error) {
	var q domain.MovieQuery
	for _, arg := range args {
		key, val, hasVal := strings.Cut(arg, "=")
		switch {
		case hasVal && strings.EqualFold(key, "genre"):
			q.Genre = val
		case hasVal && strings.EqualFold(key, "sort"):
			k, err := domain.ParseSortKey(val)
			if err != nil {
				return q, err
			}
			q.Sort = k
		case !hasVal && strings.EqualFold(arg, "desc"):
			q.Direction = domain.SortDesc
		case !hasVal && strings.EqualFold(arg, "asc"):
			q.Direction = domain.SortAsc
		default:
			return q, fmt.Errorf("%w: unknown list option %q", domain.ErrInvalidInput, arg)
		}
	}
	return q, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	m, err := a.svc.Movies.Get(ctx, a.session, id)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", m.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", m.Title)
	fmt.Fprintf(tw, "Year:\t%s\n", intText(m.Year))
	fmt.Fprintf(tw, "Genre:\t%s\n", m.Genre)
	fmt.Fprintf(tw, "Director:\t%s\n", m.Director)
	fmt.Fprintf(tw, "Actors:\t%s\n", m.Actors)
	fmt.Fprintf(tw, "IMDB rating:\t%s\n", ratingText(m.IMDBRating))
	fmt.Fprintf(tw, "Personal rating:\t%s\n", ratingText(m.PersonalRating))
	fmt.Fprintf(tw, "Watch date:\t%s\n", domain.ISOToDisplay(m.WatchDate))
	fmt.Fprintf(tw, "Note:\t%s\n", m.Note)
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	m, err := a.readMovie(domain.Movie{})
	if err != nil {
		return err
	}
	if err := a.svc.Movies.Create(ctx, a.session, &m); err != nil {
		return err
	}
	a.printf("Added %q (id %d).\n", m.Title, m.ID)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	current, err := a.svc.Movies.Get(ctx, a.session, id)
	if err != nil {
		return err
	}

	m, err := a.readMovie(*current)
	if err != nil {
		return err
	}
	if err := a.svc.Movies.Update(ctx, a.session, &m); err != nil {
		return err
	}
	a.printf("Updated %q.\n", m.Title)
	return nil
}

// EditTitle edits every movie with the given exact title, prefilling the
// form from the first match.
func (a *App) EditTitle(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		return fmt.Errorf("%w: usage: edittitle <title>", domain.ErrInvalidInput)
	}
	matches, err := a.svc.Movies.FindByTitle(ctx, a.session, title)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: no movie titled %q", domain.ErrNotFound, title)
	}
	if len(matches) > 1 {
		a.printf("%d movies are titled %q; all of them will be changed.\n", len(matches), title)
	}

	m, err := a.readMovie(matches[0])
	if err != nil {
		return err
	}
	n, err := a.svc.Movies.UpdateByTitle(ctx, a.session, title, &m)
	if err != nil {
		return err
	}
	a.printf("Updated %d movie(s).\n", n)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	m, err := a.svc.Movies.Get(ctx, a.session, id)
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %q?", m.Title), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Movies.Delete(ctx, a.session, id); err != nil {
		return err
	}
	a.printf("Deleted %q.\n", m.Title)
	return nil
}

// DeleteTitle deletes every movie with the given exact title.
func (a *App) DeleteTitle(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		return fmt.Errorf("%w: usage: deltitle <title>", domain.ErrInvalidInput)
	}
	matches, err := a.svc.Movies.FindByTitle(ctx, a.session, title)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: no movie titled %q", domain.ErrNotFound, title)
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %d movie(s) titled %q?", len(matches), title), a.out)
	if err != nil || !ok {
		return err
	}
	n, err := a.svc.Movies.DeleteByTitle(ctx, a.session, title)
	if err != nil {
		return err
	}
	a.printf("Deleted %d movie(s).\n", n)
	return nil
}

// readMovie runs the movie form with base as the current values. All
// fields are collected before any is parsed.
func (a *App) readMovie(base domain.Movie) (domain.Movie, error) {
	fields := []struct {
		label string
		cur   string
	}{
		{"Title", base.Title},
		{"Year", intText(base.Year)},
		{"Genre", base.Genre},
		{"Director", base.Director},
		{"Actors", base.Actors},
		{"IMDB rating", ratingText(base.IMDBRating)},
		{"Personal rating", ratingText(base.PersonalRating)},
		{"Watch date (DD/MM/YYYY)", domain.ISOToDisplay(base.WatchDate)},
		{"Note", base.Note},
	}
	vals := make([]string, len(fields))
	for i, f := range fields {
		v, err := GetWithDefault(a.reader, f.label, f.cur, a.out)
		if err != nil {
			return base, err
		}
		vals[i] = v
	}

	m := base
	m.Title, m.Genre, m.Director, m.Actors, m.Note = vals[0], vals[2], vals[3], vals[4], vals[8]

	year := service.CoerceYear(vals[1])
	if year.State == service.Invalid {
		return base, fmt.Errorf("%w: year %q is not a valid year", domain.ErrInvalidInput, vals[1])
	}
	m.Year = year.Ptr()

	imdb := service.CoerceRating(vals[5])
	if imdb.State == service.Invalid {
		return base, fmt.Errorf("%w: IMDB rating %q must be a number between 0 and 10", domain.ErrInvalidInput, vals[5])
	}
	m.IMDBRating = imdb.Ptr()

	personal := service.CoerceRating(vals[6])
	if personal.State == service.Invalid {
		return base, fmt.Errorf("%w: personal rating %q must be a number between 0 and 10", domain.ErrInvalidInput, vals[6])
	}
	m.PersonalRating = personal.Ptr()

	// An unchanged date may be stored in a form that does not parse.
	if vals[7] != fields[7].cur {
		iso, err := domain.ParseDisplayDate(vals[7])
		if err != nil {
			return base, err
		}
		m.WatchDate = iso
	}
	return m, nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected a movie id", domain.ErrInvalidInput)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a movie id", domain.ErrInvalidInput, args[0])
	}
	return id, nil
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func ratingText(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
