package domain

// CatalogNote marks movies copied in from the reference catalog.
const CatalogNote = "Added from IMDB TOP 1000"

// CatalogEntry is one row of the read-only reference catalog.
type CatalogEntry struct {
	Title    string
	Year     *int
	YearText string // Raw cell, kept for display when Year is nil
	Genre    string
	Director string
	Actors   string
	Rating   *float64
}
