package tmdb

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	tmdb "github.com/ryanbradynd05/go-tmdb"

	"github.com/filmlens/filmlens/internal/provider"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w300"

// recordFromMovie translates a catalog detail payload into the canonical
// record shape the primary provider would have produced. Fields the
// catalog has no notion of (MPAA rating, writer, awards, metascore, DVD)
// carry the "N/A" sentinel so the consuming layer renders them uniformly.
func recordFromMovie(movie *tmdb.Movie, credits *tmdb.MovieCredits) *provider.MovieRecord {
	rec := &provider.MovieRecord{
		Title:      movie.Title,
		Year:       releaseYear(movie.ReleaseDate),
		Rated:      "N/A",
		Released:   orNA(movie.ReleaseDate),
		Runtime:    "N/A",
		Genre:      orNA(genreNames(movie)),
		Director:   directorFromCredits(credits),
		Writer:     "N/A",
		Actors:     actorsFromCredits(credits),
		Plot:       movie.Overview,
		Language:   orNA(movie.OriginalLanguage),
		Country:    orNA(countryNames(movie)),
		Awards:     "N/A",
		Poster:     "N/A",
		Metascore:  "N/A",
		ImdbRating: "N/A",
		ImdbVotes:  "N/A",
		ImdbID:     orNA(movie.ImdbID),
		Type:       "movie",
		DVD:        "N/A",
		BoxOffice:  "N/A",
		Production: orNA(companyNames(movie)),
		Website:    orNA(movie.Homepage),
		Response:   "True",
	}

	if rec.Plot == "" {
		rec.Plot = "No plot available"
	}

	if movie.PosterPath != "" {
		rec.Poster = posterBaseURL + movie.PosterPath
	}

	if runtime := int(movie.Runtime); runtime > 0 {
		rec.Runtime = fmt.Sprintf("%d min", runtime)
	}

	ratingValue := "N/A"
	if va := float64(movie.VoteAverage); va > 0 {
		ratingValue = fmt.Sprintf("%.1f/10", va)
		rec.ImdbRating = fmt.Sprintf("%.1f", va)
	}
	rec.Ratings = []provider.Rating{{Source: "TMDB", Value: ratingValue}}

	if vc := int64(movie.VoteCount); vc > 0 {
		rec.ImdbVotes = humanize.Comma(vc)
	}

	if revenue := int64(movie.Revenue); revenue > 0 {
		rec.BoxOffice = FormatRevenueLong(revenue)
	}

	return rec
}

func releaseYear(releaseDate string) string {
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return "N/A"
}

func genreNames(movie *tmdb.Movie) string {
	names := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func countryNames(movie *tmdb.Movie) string {
	names := make([]string, 0, len(movie.ProductionCountries))
	for _, c := range movie.ProductionCountries {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func companyNames(movie *tmdb.Movie) string {
	names := make([]string, 0, len(movie.ProductionCompanies))
	for _, c := range movie.ProductionCompanies {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func directorFromCredits(credits *tmdb.MovieCredits) string {
	if credits == nil {
		return "N/A"
	}
	for _, member := range credits.Crew {
		if member.Job == "Director" {
			return member.Name
		}
	}
	return "N/A"
}

func actorsFromCredits(credits *tmdb.MovieCredits) string {
	if credits == nil || len(credits.Cast) == 0 {
		return "N/A"
	}
	names := make([]string, 0, 3)
	for _, member := range credits.Cast {
		if len(names) >= 3 {
			break
		}
		names = append(names, member.Name)
	}
	return strings.Join(names, ", ")
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
