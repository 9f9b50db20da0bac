// apps/go-web/internal/words/source.go
//
// Solution sources. A Source produces one lowercase solution word per call.
//   - HTTPSource: GET {base}/api/api/fe/wordle-words, JSON array of strings.
//   - ListSource: draws from a word list held in memory.
//
// Every failure is reported as *FetchError. Neither source retries.

package words

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// Path is where the word list is published and fetched from.
const Path = "/api/api/fe/wordle-words"

// maxBody bounds how much of a word list response is read.
const maxBody = 4 << 20

// Source obtains a solution for a new round.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// FetchError is returned when a word list cannot be obtained or used.
type FetchError struct {
	Op  string // "request", "status", "decode" or "empty"
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("fetch solution: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("fetch solution: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// errNoCandidates is wrapped when a list has no usable words.
var errNoCandidates = errors.New("no five-letter candidate words")

var errTrailingData = errors.New("unexpected data after word list")

// HTTPSource fetches the word list from a remote endpoint on every call.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource returns a source reading base+Path. A zero timeout means the
// request is only bounded by the caller's context.
func NewHTTPSource(base string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    strings.TrimSuffix(base, "/") + Path,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the address the source requests.
func (s *HTTPSource) URL() string { return s.url }

// Fetch requests the list and picks one candidate uniformly at random.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", &FetchError{Op: "request", URL: s.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return "", &FetchError{Op: "request", URL: s.url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBody))
		return "", &FetchError{Op: "status", URL: s.url, Err: fmt.Errorf("unexpected status %s", res.Status)}
	}

	var list []string
	dec := json.NewDecoder(io.LimitReader(res.Body, maxBody))
	if err := dec.Decode(&list); err != nil {
		return "", &FetchError{Op: "decode", URL: s.url, Err: err}
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return "", &FetchError{Op: "decode", URL: s.url, Err: err}
	}

	w, err := pick(list)
	if err != nil {
		return "", &FetchError{Op: "empty", URL: s.url, Err: err}
	}
	return w, nil
}

// ListSource draws from a fixed list.
type ListSource struct {
	list []string
}

// NewListSource normalizes list once; Fetch fails if nothing usable remains.
func NewListSource(list []string) *ListSource {
	return &ListSource{list: Normalize(list)}
}

// Fetch picks one word uniformly at random.
func (s *ListSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{Op: "request", Err: err}
	}
	if len(s.list) == 0 {
		return "", &FetchError{Op: "empty", Err: errNoCandidates}
	}
	return s.list[randomIndex(len(s.list))], nil
}

// pick normalizes candidates and returns one at random.
func pick(list []string) (string, error) {
	candidates := Normalize(list)
	if len(candidates) == 0 {
		return "", errNoCandidates
	}
	return candidates[randomIndex(len(candidates))], nil
}

// randomIndex returns a cryptographically random index in [0, n).
func randomIndex(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
