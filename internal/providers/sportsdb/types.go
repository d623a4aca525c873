// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package sportsdb

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/eventscope/internal/models"
)

// flexString accepts JSON strings, numbers and null. TheSportsDB is not
// consistent about quoting numeric fields.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		*f = flexString(data)
	}
	return nil
}

func (f flexString) String() string {
	return strings.TrimSpace(string(f))
}

// Int returns the value as *int, nil when empty or non-numeric.
func (f flexString) Int() *int {
	n, err := strconv.Atoi(f.String())
	if err != nil {
		return nil
	}
	return &n
}

func firstOf(values ...flexString) string {
	for _, v := range values {
		if s := v.String(); s != "" {
			return s
		}
	}
	return ""
}

type eventsResponse struct {
	Events  []json.RawMessage `json:"events"`
	Results []json.RawMessage `json:"results"` // eventslast.php uses this key
}

type rawEvent struct {
	IDEvent        flexString `json:"idEvent"`
	ID             flexString `json:"id"`
	StrSport       flexString `json:"strSport"`
	StrLeague      flexString `json:"strLeague"`
	StrSeason      flexString `json:"strSeason"`
	IntRound       flexString `json:"intRound"`
	DateEvent      flexString `json:"dateEvent"`
	DateEventLocal flexString `json:"dateEventLocal"`
	StrTime        flexString `json:"strTime"`
	StrTimeLocal   flexString `json:"strTimeLocal"`
	StrTimestamp   flexString `json:"strTimestamp"`
	StrHomeTeam    flexString `json:"strHomeTeam"`
	StrAwayTeam    flexString `json:"strAwayTeam"`
	IntHomeScore   flexString `json:"intHomeScore"`
	IntAwayScore   flexString `json:"intAwayScore"`
	StrVenue       flexString `json:"strVenue"`
	StrCity        flexString `json:"strCity"`
	StrCountry     flexString `json:"strCountry"`
	StrTVStation   flexString `json:"strTVStation"`
	StrThumb       flexString `json:"strThumb"`
	StrPoster      flexString `json:"strPoster"`
	StrVideo       flexString `json:"strVideo"`
	StrStatus      flexString `json:"strStatus"`
}

func (r *rawEvent) normalize() models.SportsEvent {
	return models.SportsEvent{
		ID:        firstOf(r.IDEvent, r.ID),
		Sport:     r.StrSport.String(),
		League:    r.StrLeague.String(),
		Season:    r.StrSeason.String(),
		Round:     r.IntRound.String(),
		Date:      firstOf(r.DateEvent, r.DateEventLocal),
		Time:      firstOf(r.StrTime, r.StrTimeLocal),
		Timestamp: r.StrTimestamp.String(),
		HomeTeam:  r.StrHomeTeam.String(),
		AwayTeam:  r.StrAwayTeam.String(),
		HomeScore: r.IntHomeScore.Int(),
		AwayScore: r.IntAwayScore.Int(),
		Venue:     r.StrVenue.String(),
		City:      r.StrCity.String(),
		Country:   r.StrCountry.String(),
		TV:        r.StrTVStation.String(),
		Thumbnail: firstOf(r.StrThumb, r.StrPoster),
		Video:     r.StrVideo.String(),
		Status:    r.StrStatus.String(),
	}
}

type teamsResponse struct {
	Teams []rawTeam `json:"teams"`
}

type rawTeam struct {
	IDTeam       flexString `json:"idTeam"`
	StrTeam      flexString `json:"strTeam"`
	StrSport     flexString `json:"strSport"`
	StrLeague    flexString `json:"strLeague"`
	StrStadium   flexString `json:"strStadium"`
	StrVenue     flexString `json:"strVenue"`
	StrCountry   flexString `json:"strCountry"`
	StrBadge     flexString `json:"strBadge"`
	StrTeamBadge flexString `json:"strTeamBadge"`
}

func (r *rawTeam) normalize() models.Team {
	return models.Team{
		ID:      r.IDTeam.String(),
		Name:    r.StrTeam.String(),
		Sport:   r.StrSport.String(),
		League:  r.StrLeague.String(),
		Stadium: firstOf(r.StrStadium, r.StrVenue),
		Country: r.StrCountry.String(),
		Badge:   firstOf(r.StrBadge, r.StrTeamBadge),
	}
}

// Sport is one entry of the provider's sport catalogue
type Sport struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Format      string `json:"format,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
}

type sportsResponse struct {
	Sports []struct {
		IDSport             flexString `json:"idSport"`
		StrSport            flexString `json:"strSport"`
		StrFormat           flexString `json:"strFormat"`
		StrSportThumb       flexString `json:"strSportThumb"`
		StrSportDescription flexString `json:"strSportDescription"`
	} `json:"sports"`
}
