package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/altersport/internal/domain/model"
	"github.com/okian/altersport/pkg/metrics"
)

// JSONStore keeps every profile in memory and persists the whole store as a
// single JSON document {"users": {...}} after every mutation.
//
// The store is a best-effort analytics cache, not a ledger: a crash between
// a mutation and its flush loses at most that one mutation. It performs no
// internal locking; serializing access is the caller's obligation.
type JSONStore struct {
	path    string
	catalog Catalog
	now     func() time.Time

	users   map[string]*model.Profile
	order   []string
	version uint64
}

const storeFileMode = 0o600

// NewJSONStore opens the store at path, creating an empty one when the file
// is absent. A present but unreadable file fails fast with ErrCorruptStore.
func NewJSONStore(path string, cat Catalog, opts ...Option) (*JSONStore, error) {
	s := &JSONStore{
		path:    path,
		catalog: cat,
		now:     time.Now,
		users:   make(map[string]*model.Profile),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	metrics.UpdateProfilesTotal(len(s.order))

	return s, nil
}

func (s *JSONStore) load() error {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return s.flush()
	}
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := s.decode(f); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
	}
	return nil
}

// decode reads the {"users": {...}} document token by token so that the
// profile insertion order recorded in the file survives a restart.
func (s *JSONStore) decode(r io.Reader) error {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return err
		}
		if key != "users" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
			continue
		}
		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		for dec.More() {
			userID, err := stringToken(dec)
			if err != nil {
				return err
			}
			p := model.NewProfile(userID)
			if err := dec.Decode(p); err != nil {
				return err
			}
			p.UserID = userID
			s.users[userID] = p
			s.order = append(s.order, userID)
		}
		if _, err := dec.Token(); err != nil { // closing brace of users
			return err
		}
	}
	if _, err := dec.Token(); err != nil { // closing brace of document
		return err
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	str, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return str, nil
}

// flush writes the full store document, preserving insertion order.
func (s *JSONStore) flush() error {
	began := time.Now()

	var buf bytes.Buffer
	buf.WriteString(`{"users":{`)
	for i, id := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			metrics.RecordStoreFlushError()
			return fmt.Errorf("%w: %w", ErrFlush, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.users[id])
		if err != nil {
			metrics.RecordStoreFlushError()
			return fmt.Errorf("%w: %w", ErrFlush, err)
		}
		buf.Write(val)
	}
	buf.WriteString("}}")

	if err := os.WriteFile(s.path, buf.Bytes(), storeFileMode); err != nil {
		metrics.RecordStoreFlushError()
		return fmt.Errorf("%w: %w", ErrFlush, err)
	}

	metrics.RecordStoreFlush(float64(time.Since(began).Milliseconds()))
	return nil
}

// mutated bumps the version and flushes after an in-memory change.
func (s *JSONStore) mutated() error {
	s.version++
	metrics.UpdateProfilesTotal(len(s.order))
	return s.flush()
}

// GetOrCreate implements Store.
func (s *JSONStore) GetOrCreate(_ context.Context, userID string, seed *Seed) (*model.Profile, error) {
	if p, ok := s.users[userID]; ok {
		return p, nil
	}

	p := model.NewProfile(userID)
	if seed != nil {
		p.UserName = seed.UserName
		p.Age = seed.Age
		if p.Age == "" {
			p.Age = "25"
		}
		p.City = strings.ToLower(seed.City)
		p.District = strings.ToLower(seed.District)
		p.SportInterests = append([]string{}, seed.SportInterests...)
		for _, sportID := range p.SportInterests {
			p.SportsLikedCount[sportID] = 1
		}
		if len(seed.EventTypePriority) > 0 {
			p.EventTypePriority = append([]string{}, seed.EventTypePriority...)
		}
	}

	s.users[userID] = p
	s.order = append(s.order, userID)
	metrics.RecordProfileCreated()

	if err := s.mutated(); err != nil {
		return nil, err
	}
	return p, nil
}

// Get implements Store.
func (s *JSONStore) Get(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, userID)
	}
	return p, nil
}

// Replace implements Store.
func (s *JSONStore) Replace(ctx context.Context, userID string, update Update) (*model.Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.UserName != nil {
		p.UserName = *update.UserName
	}
	if update.Age != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*update.Age))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAge, *update.Age)
		}
		p.Age = strconv.Itoa(n)
	}
	if update.City != nil {
		p.City = strings.ToLower(*update.City)
	}
	if update.District != nil {
		p.District = strings.ToLower(*update.District)
	}
	if update.SportInterests != nil {
		p.SportInterests = append([]string{}, update.SportInterests...)
	}
	if update.EventTypePriority != nil {
		p.EventTypePriority = append([]string{}, update.EventTypePriority...)
	}

	if err := s.mutated(); err != nil {
		return nil, err
	}
	return p, nil
}

// RecordSportClick implements Store.
func (s *JSONStore) RecordSportClick(ctx context.Context, userID, sportID string) error {
	p, err := s.GetOrCreate(ctx, userID, nil)
	if err != nil {
		return err
	}

	p.SportsClicked[sportID]++
	p.LikeSport(sportID)

	metrics.RecordClickTracked("sport")
	return s.mutated()
}

// RecordTeamClick implements Store.
func (s *JSONStore) RecordTeamClick(ctx context.Context, userID, teamID string) error {
	p, err := s.GetOrCreate(ctx, userID, nil)
	if err != nil {
		return err
	}

	team, err := s.catalog.GetTeam(ctx, teamID)
	if err != nil {
		metrics.RecordTrackingError("team")
		return fmt.Errorf("team click %s: %w", teamID, err)
	}

	p.TeamsClicked[teamID]++
	p.AddTeam(teamID)
	for _, sportID := range team.SportIDs {
		if sportID == "" {
			continue
		}
		p.TeamLikedSport[sportID]++
		p.LikeSport(sportID)
	}

	metrics.RecordClickTracked("team")
	return s.mutated()
}

// RecordEventClick implements Store.
func (s *JSONStore) RecordEventClick(ctx context.Context, userID, eventID string) (model.EventRecord, error) {
	p, err := s.GetOrCreate(ctx, userID, nil)
	if err != nil {
		return model.EventRecord{}, err
	}

	match, err := s.catalog.GetMatch(ctx, eventID)
	if err != nil {
		metrics.RecordTrackingError("event")
		return model.EventRecord{}, fmt.Errorf("event click %s: %w", eventID, err)
	}

	rec := model.EventRecord{
		EventID:    eventID,
		EventType:  model.RecordTypeMatch,
		Date:       match.Date,
		Time:       match.Time,
		SportID:    match.SportID,
		SportName:  s.sportName(ctx, match.SportID),
		HomeTeamID: match.HomeTeamID,
		AwayTeamID: match.AwayTeamID,
		CategoryID: match.CategoryID,
		LocationID: match.LocationID,
		ClickedAt:  s.now(),
	}
	rec.HomeTeamName = s.teamName(ctx, match.HomeTeamID)
	rec.AwayTeamName = s.teamName(ctx, match.AwayTeamID)

	p.EventsClicked[eventID]++
	p.EventsLiked = append(p.EventsLiked, rec)

	if match.SportID != "" {
		p.SportsClicked[match.SportID]++
		p.LikeSport(match.SportID)
	}
	for _, teamID := range []string{match.HomeTeamID, match.AwayTeamID} {
		if teamID == "" {
			continue
		}
		p.AddTeam(teamID)
		p.TeamsClicked[teamID]++
		if match.SportID != "" {
			p.TeamLikedSport[match.SportID]++
		}
	}

	metrics.RecordClickTracked("event")
	if err := s.mutated(); err != nil {
		return model.EventRecord{}, err
	}
	return rec, nil
}

// RecordTournamentClick implements Store.
func (s *JSONStore) RecordTournamentClick(ctx context.Context, userID, tournamentID string) (model.EventRecord, error) {
	p, err := s.GetOrCreate(ctx, userID, nil)
	if err != nil {
		return model.EventRecord{}, err
	}

	tournament, err := s.catalog.GetTournament(ctx, tournamentID)
	if err != nil {
		metrics.RecordTrackingError("tournament")
		return model.EventRecord{}, fmt.Errorf("tournament click %s: %w", tournamentID, err)
	}

	rec := model.EventRecord{
		EventID:        tournamentID,
		EventType:      model.RecordTypeTournament,
		Date:           tournament.StartDate,
		StartDate:      tournament.StartDate,
		EndDate:        tournament.EndDate,
		SportID:        tournament.SportID,
		SportName:      s.sportName(ctx, tournament.SportID),
		TournamentName: tournament.Name,
		CategoryID:     tournament.CategoryID,
		LocationID:     tournament.LocationID,
		MatchIDs:       append([]string{}, tournament.MatchIDs...),
		ClickedAt:      s.now(),
	}

	p.EventsLiked = append(p.EventsLiked, rec)
	if tournament.SportID != "" {
		p.LikeSport(tournament.SportID)
	}
	p.AddEventTypePriority("tournament")

	metrics.RecordClickTracked("tournament")
	if err := s.mutated(); err != nil {
		return model.EventRecord{}, err
	}
	return rec, nil
}

// sportName resolves a sport name, degrading to empty on enrichment failure.
func (s *JSONStore) sportName(ctx context.Context, sportID string) string {
	if sportID == "" {
		return ""
	}
	sport, err := s.catalog.GetSport(ctx, sportID)
	if err != nil {
		metrics.RecordEnrichmentFailure()
		return ""
	}
	return sport.Name
}

// teamName resolves a team name, degrading to empty on enrichment failure.
func (s *JSONStore) teamName(ctx context.Context, teamID string) string {
	if teamID == "" {
		return ""
	}
	team, err := s.catalog.GetTeam(ctx, teamID)
	if err != nil {
		metrics.RecordEnrichmentFailure()
		return ""
	}
	return team.Name
}

// Profiles implements Store.
func (s *JSONStore) Profiles(_ context.Context) []*model.Profile {
	profiles := make([]*model.Profile, 0, len(s.order))
	for _, id := range s.order {
		profiles = append(profiles, s.users[id])
	}
	return profiles
}

// Count implements Store.
func (s *JSONStore) Count(_ context.Context) int {
	return len(s.order)
}

// Version implements Store.
func (s *JSONStore) Version() uint64 {
	return s.version
}

// SportStat summarizes engagement with one sport.
type SportStat struct {
	SportID string `json:"sport_id"`
	Name    string `json:"name"`
	Clicks  int    `json:"clicks"`
}

// TeamStat summarizes engagement with one team.
type TeamStat struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

// Stats summarizes a user's interaction history.
type Stats struct {
	TotalEventsClicked int                 `json:"total_events_clicked"`
	FavoriteSports     []SportStat         `json:"favorite_sports"`
	FavoriteTeams      []TeamStat          `json:"favorite_teams"`
	RecentEvents       []model.EventRecord `json:"recent_events"`
	SportInterests     []string            `json:"sport_interests"`
}

const statsTopN = 5

// UserStats returns an interaction summary for one user. Name enrichment
// failures degrade to "Unknown Sport"/"Unknown Team".
func (s *JSONStore) UserStats(ctx context.Context, userID string) (Stats, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	type sportCount struct {
		id    string
		count int
	}
	counts := make([]sportCount, 0, len(p.SportsLikedCount))
	for id, count := range p.SportsLikedCount {
		counts = append(counts, sportCount{id: id, count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].id < counts[j].id
	})
	if len(counts) > statsTopN {
		counts = counts[:statsTopN]
	}

	stats := Stats{
		TotalEventsClicked: len(p.EventsClicked),
		FavoriteSports:     make([]SportStat, 0, len(counts)),
		FavoriteTeams:      []TeamStat{},
		SportInterests:     append([]string{}, p.SportInterests...),
	}

	for _, sc := range counts {
		name := s.sportName(ctx, sc.id)
		if name == "" {
			name = "Unknown Sport"
		}
		stats.FavoriteSports = append(stats.FavoriteSports, SportStat{SportID: sc.id, Name: name, Clicks: sc.count})
	}

	teams := p.TeamsLiked
	if len(teams) > statsTopN {
		teams = teams[:statsTopN]
	}
	for _, teamID := range teams {
		name := s.teamName(ctx, teamID)
		if name == "" {
			name = "Unknown Team"
		}
		stats.FavoriteTeams = append(stats.FavoriteTeams, TeamStat{TeamID: teamID, Name: name})
	}

	recent := p.EventsLiked
	if len(recent) > statsTopN {
		recent = recent[len(recent)-statsTopN:]
	}
	stats.RecentEvents = append(stats.RecentEvents, recent...)

	return stats, nil
}
