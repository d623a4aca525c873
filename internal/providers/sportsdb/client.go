// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package sportsdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/eventscope/internal/cache"
	"github.com/tomtom215/eventscope/internal/logging"
	"github.com/tomtom215/eventscope/internal/metrics"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers"
)

const (
	// Name identifies the provider in metrics and logs.
	Name = "sportsdb"

	DefaultBaseURL = "https://www.thesportsdb.com/api/v1/json"

	// DefaultAPIKey is the public free-tier key.
	DefaultAPIKey = "123"

	DefaultTimeout = 15 * time.Second

	// ShortTTL caches volatile fixture lists
	ShortTTL = 2 * time.Minute

	// LongTTL caches near-static catalogues
	LongTTL = time.Hour

	// NegativeTTL dampens repeat calls after a failure or 429
	NegativeTTL = 30 * time.Second
)

// LeagueIDs maps league codes to provider league ids.
var LeagueIDs = map[string]string{
	"EPL": "4328",
	"NBA": "4387",
	"NFL": "4391",
	"NHL": "4380",
	"MLB": "4424",
}

type sportAlias struct {
	sport  string
	league string // key into LeagueIDs, empty when the sport spans leagues
}

var sportAliases = map[string]sportAlias{
	"nfl":    {"American Football", "NFL"},
	"nba":    {"Basketball", "NBA"},
	"mlb":    {"Baseball", "MLB"},
	"nhl":    {"Ice Hockey", "NHL"},
	"epl":    {"Soccer", "EPL"},
	"soccer": {"Soccer", ""},
}

// Aliases returns the supported sport aliases, sorted.
func Aliases() []string {
	out := make([]string, 0, len(sportAliases))
	for k := range sportAliases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// LeagueFor resolves a sport alias (case-insensitive) to a league id.
func LeagueFor(sport string) (string, bool) {
	alias, ok := sportAliases[strings.ToLower(strings.TrimSpace(sport))]
	if !ok || alias.league == "" {
		return "", false
	}
	id, ok := LeagueIDs[alias.league]
	return id, ok
}

// Config configures the client. An empty APIKey uses the public key.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Breaker *providers.Breaker
}

// Client reads league fixtures and team data from TheSportsDB.
type Client struct {
	cfg   Config
	http  *providers.HTTPClient
	cache cache.Cacher
}

// failure is cached in place of a response to dampen retries
type failure struct {
	err error
}

// New creates a TheSportsDB client backed by c.
func New(cfg Config, c cache.Cacher) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:   cfg,
		http:  providers.NewHTTPClient(providers.HTTPConfig{Provider: Name, Timeout: cfg.Timeout, Breaker: cfg.Breaker}),
		cache: c,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return Name
}

// getJSON fetches path with params through the cache. Failures are cached
// for NegativeTTL and returned as errors.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, ttl time.Duration) ([]byte, error) {
	key := strings.ToLower("sportsdb:" + path + ":" + params.Encode())

	v := c.cache.GetOrSetDynamic(key, func() (interface{}, time.Duration) {
		reqURL := providers.JoinURL(c.cfg.BaseURL, c.cfg.APIKey, path)
		body, err := c.http.Get(ctx, reqURL, params, nil)
		if err != nil {
			logging.Ctx(ctx).Warn().
				Str("provider", Name).
				Str("path", path).
				Str("error", logging.RedactSecrets(err.Error(), c.cfg.APIKey)).
				Msg("TheSportsDB request failed")
			if errors.Is(err, context.Canceled) {
				return failure{err: err}, 0
			}
			return failure{err: err}, NegativeTTL
		}
		return body, ttl
	})

	switch t := v.(type) {
	case []byte:
		return t, nil
	case failure:
		return nil, t.err
	default:
		return nil, fmt.Errorf("%w: unexpected cache entry %T", providers.ErrTransient, v)
	}
}

func (c *Client) events(ctx context.Context, path string, params url.Values) ([]models.SportsEvent, error) {
	body, err := c.getJSON(ctx, path, params, ShortTTL)
	if err != nil {
		return nil, err
	}
	var resp eventsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", providers.ErrMalformedResponse, path, err)
	}
	items := resp.Events
	if len(items) == 0 {
		items = resp.Results
	}

	out := make([]models.SportsEvent, 0, len(items))
	for _, item := range items {
		var raw rawEvent
		if err := json.Unmarshal(item, &raw); err != nil {
			metrics.RecordSkippedItem(Name)
			continue
		}
		out = append(out, raw.normalize())
	}
	return out, nil
}

// NextLeagueEvents returns upcoming fixtures for a league id.
func (c *Client) NextLeagueEvents(ctx context.Context, leagueID string) ([]models.SportsEvent, error) {
	return c.events(ctx, "eventsnextleague.php", url.Values{"id": {leagueID}})
}

// PastLeagueEvents returns recent results for a league id.
func (c *Client) PastLeagueEvents(ctx context.Context, leagueID string) ([]models.SportsEvent, error) {
	return c.events(ctx, "eventspastleague.php", url.Values{"id": {leagueID}})
}

// TeamNextEvents returns upcoming fixtures for a team id.
func (c *Client) TeamNextEvents(ctx context.Context, teamID string) ([]models.SportsEvent, error) {
	return c.events(ctx, "eventsnext.php", url.Values{"id": {teamID}})
}

// SearchTeams finds teams by name.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]models.Team, error) {
	body, err := c.getJSON(ctx, "searchteams.php", url.Values{"t": {name}}, LongTTL)
	if err != nil {
		return nil, err
	}
	var resp teamsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: searchteams: %v", providers.ErrMalformedResponse, err)
	}
	teams := make([]models.Team, 0, len(resp.Teams))
	for i := range resp.Teams {
		teams = append(teams, resp.Teams[i].normalize())
	}
	return teams, nil
}

// AllSports returns the sport catalogue.
func (c *Client) AllSports(ctx context.Context) ([]Sport, error) {
	body, err := c.getJSON(ctx, "all_sports.php", nil, LongTTL)
	if err != nil {
		return nil, err
	}
	var resp sportsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: all_sports: %v", providers.ErrMalformedResponse, err)
	}
	sports := make([]Sport, 0, len(resp.Sports))
	for _, s := range resp.Sports {
		sports = append(sports, Sport{
			ID:          s.IDSport.String(),
			Name:        s.StrSport.String(),
			Format:      s.StrFormat.String(),
			Thumbnail:   s.StrSportThumb.String(),
			Description: s.StrSportDescription.String(),
		})
	}
	return sports, nil
}

// Snapshot returns upcoming and recent fixtures for a sport alias. Unknown
// aliases and sports without a mapped league yield an empty snapshot. One
// failing side leaves its list empty; an error is returned only when both fail.
func (c *Client) Snapshot(ctx context.Context, sport string) (*models.LeagueSnapshot, error) {
	snap := &models.LeagueSnapshot{
		Sport:    sport,
		Upcoming: []models.SportsEvent{},
		Recent:   []models.SportsEvent{},
	}
	leagueID, ok := LeagueFor(sport)
	if !ok {
		return snap, nil
	}
	snap.LeagueID = leagueID

	var upcomingErr, recentErr error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := c.NextLeagueEvents(gctx, leagueID)
		if err != nil {
			upcomingErr = err
			return nil
		}
		snap.Upcoming = events
		return nil
	})
	g.Go(func() error {
		events, err := c.PastLeagueEvents(gctx, leagueID)
		if err != nil {
			recentErr = err
			return nil
		}
		snap.Recent = events
		return nil
	})
	_ = g.Wait()

	if upcomingErr != nil && recentErr != nil {
		return snap, errors.Join(upcomingErr, recentErr)
	}
	return snap, nil
}

// LeagueEvents returns upcoming fixtures for a sport alias as generic events.
func (c *Client) LeagueEvents(ctx context.Context, sport string) ([]models.Event, error) {
	snap, err := c.Snapshot(ctx, sport)
	if err != nil {
		return nil, err
	}
	out := make([]models.Event, 0, len(snap.Upcoming))
	for i := range snap.Upcoming {
		out = append(out, snap.Upcoming[i].ToEvent())
	}
	return out, nil
}
