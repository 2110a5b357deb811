package provider

// Rating is a single quality signal as reported by one source,
// e.g. {"Internet Movie Database", "8.8/10"} or {"TMDB", "8.4/10"}.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// MovieRecord is the canonical merged entity returned to callers. The JSON
// field names follow the primary provider's wire shape because that is what
// the consuming UI layer renders; fields the active source cannot supply
// carry the sentinel "N/A".
type MovieRecord struct {
	Title    string `json:"Title"`
	Year     string `json:"Year,omitempty"`
	Rated    string `json:"Rated,omitempty"`
	Released string `json:"Released,omitempty"`
	Runtime  string `json:"Runtime,omitempty"`
	Genre    string `json:"Genre,omitempty"`
	Director string `json:"Director,omitempty"`
	Writer   string `json:"Writer,omitempty"`
	Actors   string `json:"Actors,omitempty"`
	Plot     string `json:"Plot,omitempty"`
	Language string `json:"Language,omitempty"`
	Country  string `json:"Country,omitempty"`
	Awards   string `json:"Awards,omitempty"`
	Poster   string `json:"Poster,omitempty"`

	Ratings    []Rating `json:"Ratings,omitempty"`
	Metascore  string   `json:"Metascore,omitempty"`
	ImdbRating string   `json:"imdbRating,omitempty"`
	ImdbVotes  string   `json:"imdbVotes,omitempty"`
	ImdbID     string   `json:"imdbID,omitempty"`

	Type       string `json:"Type,omitempty"`
	DVD        string `json:"DVD,omitempty"`
	BoxOffice  string `json:"BoxOffice,omitempty"`
	Production string `json:"Production,omitempty"`
	Website    string `json:"Website,omitempty"`
	Response   string `json:"Response,omitempty"`

	// Enrichment attached by the resolver after the base record is chosen.
	UserReviews  []UserReview `json:"userReviews"`
	DetailedInfo DetailedInfo `json:"detailedInfo"`
}

// Resolved reports whether the record carries enough identity to be
// returned as a success. A record without a title must never be cached.
func (r *MovieRecord) Resolved() bool {
	return r != nil && r.Title != ""
}

// UserReview is a single formatted review from the enrichment provider.
type UserReview struct {
	Author    string `json:"author"`
	Content   string `json:"content"`
	Rating    string `json:"rating"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"created_at"`
}

// BoxOffice holds raw commercial figures plus a display string such as
// "$238M worldwide (3.4x budget)".
type BoxOffice struct {
	Revenue   int64  `json:"revenue"`
	Budget    int64  `json:"budget"`
	Formatted string `json:"formatted"`
}

// DetailedInfo is the popularity/vote/box-office bag from the enrichment
// provider. The zero value is a valid "nothing known" result.
type DetailedInfo struct {
	BoxOffice   *BoxOffice `json:"boxOffice,omitempty"`
	Popularity  float64    `json:"popularity"`
	VoteAverage float64    `json:"voteAverage"`
	VoteCount   int        `json:"voteCount"`
}
