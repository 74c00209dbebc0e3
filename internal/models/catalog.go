package models

// Film is a search hit from the remote movie catalog.
type Film struct {
	ExternalID string
	Title      string
	Year       string
	Poster     string
	Type       string
}

// FilmDetails is the full catalog record of a film.
type FilmDetails struct {
	ExternalID string
	Title      string
	Year       string
	Poster     string
	Plot       string
	Genre      string
	Director   string
	Runtime    string
}

// Film returns the summary part of the details.
func (d FilmDetails) Film() Film {
	return Film{ExternalID: d.ExternalID, Title: d.Title, Year: d.Year, Poster: d.Poster, Type: "movie"}
}
