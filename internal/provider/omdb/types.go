package omdb

import "github.com/filmlens/filmlens/internal/provider"

// titlePayload is the full OMDb title/detail response envelope. The
// Response discriminator is "True" or "False"; Error is set on "False".
type titlePayload struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Writer   string `json:"Writer"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Language string `json:"Language"`
	Country  string `json:"Country"`
	Awards   string `json:"Awards"`
	Poster   string `json:"Poster"`
	Ratings  []struct {
		Source string `json:"Source"`
		Value  string `json:"Value"`
	} `json:"Ratings"`
	Metascore  string `json:"Metascore"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type"`
	DVD        string `json:"DVD"`
	BoxOffice  string `json:"BoxOffice"`
	Production string `json:"Production"`
	Website    string `json:"Website"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// searchPayload is the fuzzy-search (s=) response envelope.
type searchPayload struct {
	Search []struct {
		Title  string `json:"Title"`
		Year   string `json:"Year"`
		ImdbID string `json:"imdbID"`
		Type   string `json:"Type"`
		Poster string `json:"Poster"`
	} `json:"Search"`
	TotalResults string `json:"totalResults"`
	Response     string `json:"Response"`
	Error        string `json:"Error"`
}

func (p *titlePayload) found() bool {
	return p.Response == "True"
}

func (p *titlePayload) toRecord() *provider.MovieRecord {
	rec := &provider.MovieRecord{
		Title:      p.Title,
		Year:       p.Year,
		Rated:      p.Rated,
		Released:   p.Released,
		Runtime:    p.Runtime,
		Genre:      p.Genre,
		Director:   p.Director,
		Writer:     p.Writer,
		Actors:     p.Actors,
		Plot:       p.Plot,
		Language:   p.Language,
		Country:    p.Country,
		Awards:     p.Awards,
		Poster:     p.Poster,
		Metascore:  p.Metascore,
		ImdbRating: p.ImdbRating,
		ImdbVotes:  p.ImdbVotes,
		ImdbID:     p.ImdbID,
		Type:       p.Type,
		DVD:        p.DVD,
		BoxOffice:  p.BoxOffice,
		Production: p.Production,
		Website:    p.Website,
		Response:   p.Response,
	}

	for _, r := range p.Ratings {
		rec.Ratings = append(rec.Ratings, provider.Rating{Source: r.Source, Value: r.Value})
	}

	return rec
}
