package omdb

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/filmlens/filmlens/internal/provider"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripFunc) *http.Client {
	return &http.Client{Transport: fn}
}

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func newClient(t *testing.T, fn roundTripFunc) *Client {
	t.Helper()
	c, err := New(Config{APIKey: "testing", HTTPClient: newTestClient(fn)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error when api key is missing")
	}
}

func TestFetchByTitleExactMatch(t *testing.T) {
	client := newClient(t, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Get("apikey") != "testing" {
			t.Errorf("apikey = %q, want testing", q.Get("apikey"))
		}
		if q.Get("t") != "Interstellar" {
			t.Errorf("t = %q, want Interstellar", q.Get("t"))
		}
		return jsonResponse(200, `{
            "Title": "Interstellar",
            "Year": "2014",
            "Rated": "PG-13",
            "Runtime": "169 min",
            "Genre": "Adventure, Drama, Sci-Fi",
            "Plot": "A team of explorers travel through a wormhole in space.",
            "Language": "English",
            "Country": "USA",
            "Ratings": [{"Source": "Internet Movie Database", "Value": "8.7/10"}],
            "imdbRating": "8.7",
            "imdbVotes": "1,886,544",
            "imdbID": "tt0816692",
            "Type": "movie",
            "BoxOffice": "$188,020,017",
            "Response": "True"
        }`), nil
	})

	rec, err := client.FetchByTitle(context.Background(), "Interstellar")
	if err != nil {
		t.Fatalf("FetchByTitle() error = %v", err)
	}

	if rec.Title != "Interstellar" || rec.Year != "2014" {
		t.Errorf("identity = %q/%q, want Interstellar/2014", rec.Title, rec.Year)
	}
	if rec.Rated != "PG-13" {
		t.Errorf("Rated = %q, want PG-13", rec.Rated)
	}
	want := []provider.Rating{{Source: "Internet Movie Database", Value: "8.7/10"}}
	if diff := cmp.Diff(want, rec.Ratings); diff != "" {
		t.Errorf("Ratings mismatch (-want +got):\n%s", diff)
	}
	if rec.Response != "True" {
		t.Errorf("Response = %q, want True", rec.Response)
	}
}

func TestFetchByTitleFuzzyFallback(t *testing.T) {
	var calls []string
	client := newClient(t, func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		switch {
		case q.Get("t") != "":
			calls = append(calls, "exact")
			return jsonResponse(200, `{"Response": "False", "Error": "Movie not found!"}`), nil
		case q.Get("s") != "":
			calls = append(calls, "search")
			return jsonResponse(200, `{
                "Search": [
                    {"Title": "Blade Runner 2049", "Year": "2017", "imdbID": "tt1856101", "Type": "movie"},
                    {"Title": "Blade Runner", "Year": "1982", "imdbID": "tt0083658", "Type": "movie"}
                ],
                "totalResults": "2",
                "Response": "True"
            }`), nil
		case q.Get("i") == "tt1856101":
			calls = append(calls, "detail")
			return jsonResponse(200, `{
                "Title": "Blade Runner 2049",
                "Year": "2017",
                "imdbID": "tt1856101",
                "Type": "movie",
                "Response": "True"
            }`), nil
		default:
			t.Fatalf("unexpected request: %s", req.URL)
			return nil, nil
		}
	})

	rec, err := client.FetchByTitle(context.Background(), "Bladerunner 2049")
	if err != nil {
		t.Fatalf("FetchByTitle() error = %v", err)
	}

	if rec.Title != "Blade Runner 2049" {
		t.Errorf("Title = %q, want Blade Runner 2049", rec.Title)
	}
	// The fallback must consume the exact lookup's negative result before
	// searching, and must re-fetch the first candidate by ID.
	wantCalls := []string{"exact", "search", "detail"}
	if diff := cmp.Diff(wantCalls, calls); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchByTitleNotFound(t *testing.T) {
	client := newClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"Response": "False", "Error": "Movie not found!"}`), nil
	})

	_, err := client.FetchByTitle(context.Background(), "Zzyzxqq Nonexistent Film 9999")
	if err == nil {
		t.Fatal("expected error for unresolvable title")
	}
	if !provider.IsNotFound(err) {
		t.Errorf("error = %v, want NOT_FOUND classification", err)
	}
}

func TestFetchByTitleNetworkFaultIsTransient(t *testing.T) {
	client := newClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	})

	_, err := client.FetchByTitle(context.Background(), "Inception")
	if err == nil {
		t.Fatal("expected error on network fault")
	}
	if !provider.IsTransient(err) {
		t.Errorf("error = %v, want TRANSIENT classification", err)
	}
	if provider.IsNotFound(err) {
		t.Error("network fault classified as NOT_FOUND")
	}
}

func TestFetchByTitleBadStatusIsTransient(t *testing.T) {
	client := newClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(503, `{}`), nil
	})

	_, err := client.FetchByTitle(context.Background(), "Inception")
	if !provider.IsTransient(err) {
		t.Errorf("error = %v, want TRANSIENT classification", err)
	}
}
