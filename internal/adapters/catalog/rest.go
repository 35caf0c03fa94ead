package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/okian/altersport/pkg/metrics"
)

// Default REST client configuration constants.
const (
	defaultRequestTimeout = 5 * time.Second
	dateParamLayout       = "2006-01-02"
)

// RESTClient implements Client against the catalog record API.
type RESTClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	now        func() time.Time
}

// NewRESTClient creates a catalog client for the given base URL.
func NewRESTClient(baseURL string, opts ...Option) *RESTClient {
	c := &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListSports returns every sport in the catalog.
func (c *RESTClient) ListSports(ctx context.Context) ([]Sport, error) {
	var sports []Sport
	if err := c.get(ctx, "list_sports", "/sports", nil, &sports); err != nil {
		return nil, err
	}
	return sports, nil
}

// ListTeams returns every team in the catalog.
func (c *RESTClient) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	if err := c.get(ctx, "list_teams", "/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// ListLocations returns every location in the catalog.
func (c *RESTClient) ListLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	if err := c.get(ctx, "list_locations", "/locations", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// ListTournaments returns every tournament in the catalog.
func (c *RESTClient) ListTournaments(ctx context.Context) ([]Tournament, error) {
	var tournaments []Tournament
	if err := c.get(ctx, "list_tournaments", "/tournaments", nil, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

// GetSport returns one sport record.
func (c *RESTClient) GetSport(ctx context.Context, id string) (Sport, error) {
	var sport Sport
	if err := c.get(ctx, "get_sport", "/sports/"+url.PathEscape(id), nil, &sport); err != nil {
		return Sport{}, err
	}
	return sport, nil
}

// GetTeam returns one team record.
func (c *RESTClient) GetTeam(ctx context.Context, id string) (Team, error) {
	var team Team
	if err := c.get(ctx, "get_team", "/teams/"+url.PathEscape(id), nil, &team); err != nil {
		return Team{}, err
	}
	return team, nil
}

// GetMatch returns one match record.
func (c *RESTClient) GetMatch(ctx context.Context, id string) (Match, error) {
	var match Match
	if err := c.get(ctx, "get_match", "/matches/"+url.PathEscape(id), nil, &match); err != nil {
		return Match{}, err
	}
	return match, nil
}

// GetTournament returns one tournament record.
func (c *RESTClient) GetTournament(ctx context.Context, id string) (Tournament, error) {
	var tournament Tournament
	if err := c.get(ctx, "get_tournament", "/tournaments/"+url.PathEscape(id), nil, &tournament); err != nil {
		return Tournament{}, err
	}
	return tournament, nil
}

// QueryUpcomingMatches returns matches strictly after now and within
// daysAhead days, with the soft-filter fallback applied.
func (c *RESTClient) QueryUpcomingMatches(ctx context.Context, sportIDs, teamIDs, locationIDs []string, daysAhead int) ([]Match, error) {
	start := c.now()
	end := start.AddDate(0, 0, daysAhead)
	return c.queryMatches(ctx, start, end, sportIDs, teamIDs, locationIDs)
}

// QueryEventsByDateRange returns matches within [start, end), with the
// soft-filter fallback applied.
func (c *RESTClient) QueryEventsByDateRange(ctx context.Context, start, end time.Time, sportIDs, teamIDs, locationIDs []string) ([]Match, error) {
	return c.queryMatches(ctx, start, end, sportIDs, teamIDs, locationIDs)
}

func (c *RESTClient) queryMatches(ctx context.Context, start, end time.Time, sportIDs, teamIDs, locationIDs []string) ([]Match, error) {
	params := url.Values{}
	params.Set("from", start.Format(dateParamLayout))
	params.Set("to", end.Format(dateParamLayout))

	var matches []Match
	if err := c.get(ctx, "query_matches", "/matches", params, &matches); err != nil {
		return nil, err
	}

	// The date window is the base set; only matches strictly after the window
	// start survive it.
	base := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Date.After(start) && m.Date.Before(end) {
			base = append(base, m)
		}
	}
	sort.SliceStable(base, func(i, j int) bool { return base[i].Date.Before(base[j].Date) })

	return FilterMatches(base, sportIDs, teamIDs, locationIDs), nil
}

// get performs one GET request against the record API and decodes the
// response body into out.
func (c *RESTClient) get(ctx context.Context, op, path string, params url.Values, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		metrics.RecordCatalogFailure(op)
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	began := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordCatalogFailure(op)
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordCatalogRequest(op, float64(time.Since(began).Milliseconds()))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		metrics.RecordCatalogFailure(op)
		return fmt.Errorf("%s: %w: status %d", op, ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordCatalogFailure(op)
		return fmt.Errorf("%s: %w: decode: %w", op, ErrUnavailable, err)
	}
	return nil
}
