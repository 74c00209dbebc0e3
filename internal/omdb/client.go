// Package omdb is a small client for the OMDb movie catalog API: title
// search and full details by IMDb id.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/logging"
	"github.com/dmitrijs2005/starly/internal/models"
	"github.com/patrickmn/go-cache"
)

var (
	// ErrTooManyResults is returned when the query matches too broadly.
	ErrTooManyResults = errors.New("too many results, refine the search")

	// ErrUnavailable wraps transport failures and non-200 responses.
	ErrUnavailable = errors.New("movie catalog unavailable")
)

const (
	msgNotFound    = "Movie not found!"
	msgTooMany     = "Too many results."
	msgIncorrectID = "Incorrect IMDb ID."
	notAvailable   = "N/A"
	userAgent      = "starly/1.0"
)

// APIError is an error message reported by OMDb in a 200 response.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "omdb: " + e.Message
}

// Options configure a Client.
type Options struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client wraps direct OMDb HTTP calls. Details responses are cached in
// memory for CacheTTL.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	details    *cache.Cache
	logger     logging.Logger
}

// NewClient validates opts and builds a Client.
func NewClient(opts Options, logger logging.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("omdb base URL is required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid omdb URL: %w", err)
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &Client{
		baseURL:    u,
		apiKey:     opts.APIKey,
		httpClient: &http.Client{Timeout: opts.Timeout},
		details:    cache.New(ttl, 2*ttl),
		logger:     logger,
	}, nil
}

type searchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

type searchResponse struct {
	Search   []searchItem `json:"Search"`
	Response string       `json:"Response"`
	Error    string       `json:"Error"`
}

type detailsResponse struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	ImdbID   string `json:"imdbID"`
	Poster   string `json:"Poster"`
	Plot     string `json:"Plot"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Runtime  string `json:"Runtime"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// SearchByTitle returns the movies matching title. A blank title returns an
// empty result without calling the API. Series and episodes are dropped.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]models.Film, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("s", title)

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	if resp.Response != "True" {
		switch resp.Error {
		case msgNotFound:
			return []models.Film{}, nil
		case msgTooMany:
			return nil, ErrTooManyResults
		default:
			return nil, &APIError{Message: resp.Error}
		}
	}

	films := make([]models.Film, 0, len(resp.Search))
	for _, it := range resp.Search {
		if it.Type != "movie" {
			continue
		}
		films = append(films, models.Film{
			ExternalID: it.ImdbID,
			Title:      it.Title,
			Year:       it.Year,
			Poster:     poster(it.Poster),
			Type:       it.Type,
		})
	}

	c.logger.Debug(ctx, "omdb search", "title", title, "hits", len(films))
	return films, nil
}

// GetDetails fetches the full record of a film. Unknown ids return
// common.ErrNotFound.
func (c *Client) GetDetails(ctx context.Context, externalID string) (*models.FilmDetails, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, common.ErrNotFound
	}

	if v, ok := c.details.Get(externalID); ok {
		d := v.(models.FilmDetails)
		return &d, nil
	}

	params := url.Values{}
	params.Set("i", externalID)
	params.Set("plot", "full")

	var resp detailsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	if resp.Response != "True" {
		switch resp.Error {
		case msgNotFound, msgIncorrectID, "Error getting data.":
			return nil, common.ErrNotFound
		default:
			return nil, &APIError{Message: resp.Error}
		}
	}

	d := models.FilmDetails{
		ExternalID: resp.ImdbID,
		Title:      resp.Title,
		Year:       resp.Year,
		Poster:     poster(resp.Poster),
		Plot:       na(resp.Plot),
		Genre:      na(resp.Genre),
		Director:   na(resp.Director),
		Runtime:    na(resp.Runtime),
	}
	c.details.SetDefault(externalID, d)
	return &d, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	u := *c.baseURL
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "omdb request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn(ctx, "omdb returned non-OK status", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return nil
}

func poster(p string) string {
	return na(p)
}

func na(v string) string {
	if v == notAvailable {
		return ""
	}
	return v
}
