package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/moviedb/internal/domain"
	"github.com/msomdec/moviedb/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `Poster_Link,Series_Title,Released_Year,Certificate,Runtime,Genre,IMDB_Rating,Overview,Meta_score,Director,Star1,Star2,Star3,Star4,No_of_Votes,Gross
x,The Shawshank Redemption,1994,A,142 min,Drama,9.3,Two imprisoned men,80,Frank Darabont,Tim Robbins,Morgan Freeman,Bob Gunton,William Sadler,2343110,"28,341,469"
x,Apollo 13,PG,U,140 min,"Adventure, Drama, History",7.6,NASA must devise a strategy,77,Ron Howard,Tom Hanks,Bill Paxton,Kevin Bacon,
x,The Dark Knight,2008,UA,152 min,"Action, Crime, Drama",n/a,Batman,84,Christopher Nolan,Christian Bale,Heath Ledger,Aaron Eckhart,Michael Caine,2303232,"534,858,444"
`

func writeCatalog(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imdb_top_1000.csv")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestCatalogService_Load(t *testing.T) {
	svc := service.NewCatalogService(writeCatalog(t, catalogCSV))

	entries, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "The Shawshank Redemption", first.Title)
	require.NotNil(t, first.Year)
	assert.Equal(t, 1994, *first.Year)
	assert.Equal(t, "Drama", first.Genre)
	assert.Equal(t, "Frank Darabont", first.Director)
	assert.Equal(t, "Tim Robbins, Morgan Freeman, Bob Gunton, William Sadler", first.Actors)
	require.NotNil(t, first.Rating)
	assert.InDelta(t, 9.3, *first.Rating, 1e-9)

	apollo := entries[1]
	assert.Nil(t, apollo.Year)
	assert.Equal(t, "PG", apollo.YearText)
	assert.Equal(t, "Tom Hanks, Bill Paxton, Kevin Bacon", apollo.Actors)

	assert.Nil(t, entries[2].Rating)
}

func TestCatalogService_Load_MissingFile(t *testing.T) {
	svc := service.NewCatalogService(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestCatalogService_Load_MissingColumn(t *testing.T) {
	svc := service.NewCatalogService(writeCatalog(t, "Series_Title,Released_Year\nHeat,1995\n"))

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Contains(t, err.Error(), "Genre")
}

func TestCatalogService_Search(t *testing.T) {
	svc := service.NewCatalogService(writeCatalog(t, catalogCSV))
	entries, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, svc.Search(entries, ""), 3)

	got := svc.Search(entries, "  the ")
	require.Len(t, got, 2)
	assert.Equal(t, "The Shawshank Redemption", got[0].Title)
	assert.Equal(t, "The Dark Knight", got[1].Title)

	assert.Empty(t, svc.Search(entries, "godfather"))
}

func TestCatalogService_ToMovieDraft(t *testing.T) {
	svc := service.NewCatalogService("")
	year := 1994
	rating := 9.3

	m := svc.ToMovieDraft(domain.CatalogEntry{
		Title: "The Shawshank Redemption", Year: &year, Genre: "Drama",
		Director: "Frank Darabont", Actors: "Tim Robbins", Rating: &rating,
	})

	assert.Equal(t, "The Shawshank Redemption", m.Title)
	assert.Equal(t, &year, m.Year)
	assert.Equal(t, &rating, m.IMDBRating)
	require.NotNil(t, m.PersonalRating)
	assert.Zero(t, *m.PersonalRating)
	assert.Equal(t, domain.CatalogNote, m.Note)
	assert.Empty(t, m.WatchDate)
	assert.NoError(t, m.Validate())
}
