// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package scraper

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

var parseNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

const jsonLDPage = `<!doctype html><html><head>
<script type="application/ld+json">
[{"@context": "https://schema.org", "@type": "MusicEvent",
  "name": "Blues on the Green", "url": "https://example.com/blues",
  "startDate": "2026-10-21T19:00:00", "image": ["https://example.com/blues.jpg"],
  "location": {"@type": "Place", "name": "Zilker Park",
    "address": {"addressLocality": "Austin", "addressCountry": {"name": "US"}},
    "geo": {"latitude": "30.2669", "longitude": -97.7729}}},
 {"@type": "Organization", "name": "Not an event"},
 {"@type": "Event", "description": "missing a name"}]
</script>
<script type="application/ld+json">{"@graph": [{"@type": ["Event"], "name": "Night Market", "startDate": "Sat, Oct 24, 6 – 10 PM",
  "location": {"name": "Mueller", "address": "4550 Mueller Blvd"}}]}</script>
<script type="application/ld+json">{broken</script>
</head><body><div role="listitem"><div class="BNeawe AP7Wnd">Ignored card</div></div></body></html>`

func TestParseHTMLPrefersJSONLD(t *testing.T) {
	t.Parallel()

	events, err := ParseHTML(strings.NewReader(jsonLDPage), parseNow)
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}

	blues := events[0]
	if blues.ID != "https://example.com/blues" || blues.Source != Source {
		t.Errorf("identity = %q / %q", blues.ID, blues.Source)
	}
	if blues.Start != "2026-10-21T19:00:00" || blues.Image != "https://example.com/blues.jpg" {
		t.Errorf("start/image = %q / %q", blues.Start, blues.Image)
	}
	if blues.Venue != "Zilker Park" || blues.City != "Austin" || blues.Country != "US" {
		t.Errorf("location = %q, %q, %q", blues.Venue, blues.City, blues.Country)
	}
	if !blues.HasCoordinates() || *blues.Latitude != 30.2669 || *blues.Longitude != -97.7729 {
		t.Errorf("coordinates = %v, %v", blues.Latitude, blues.Longitude)
	}

	market := events[1]
	if !strings.HasPrefix(market.ID, "scraperapi:1:") {
		t.Errorf("linkless event id = %q", market.ID)
	}
	if market.Start != "2026-10-24T18:00:00" || market.End != "2026-10-24T22:00:00" {
		t.Errorf("parsed dates = %q - %q", market.Start, market.End)
	}
	if market.Venue != "Mueller" {
		t.Errorf("venue = %q", market.Venue)
	}
}

const cardsPage = `<html><body>
<div role="list">
  <div role="listitem">
    <a href="/url?q=https://tickets.example.com/show&amp;sa=U">
      <div class="BNeawe AP7Wnd">Indie Showcase</div>
    </a>
    <div class="BNeawe">Fri, Oct 23, 8 – 11 PM</div>
    <div>Mohawk, Austin</div>
  </div>
  <div role="listitem">
    <h3>A Very Long Event Title That Goes On And On</h3>
    <div>Sat, Oct 24</div>
  </div>
  <div role="listitem"><div>no title here</div></div>
</div></body></html>`

func TestParseHTMLCards(t *testing.T) {
	t.Parallel()

	events, err := ParseHTML(strings.NewReader(cardsPage), parseNow)
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}

	show := events[0]
	if show.Name != "Indie Showcase" || show.URL != "https://tickets.example.com/show" {
		t.Errorf("first card = %q / %q", show.Name, show.URL)
	}
	if show.Start != "2026-10-23T20:00:00" || show.End != "2026-10-23T23:00:00" {
		t.Errorf("first card dates = %q - %q", show.Start, show.End)
	}

	long := events[1]
	if long.ID != "scraperapi:1:A Very Long Event Title That G" {
		t.Errorf("second card id = %q", long.ID)
	}
	if long.Start != "2026-10-24T00:00:00" {
		t.Errorf("second card start = %q", long.Start)
	}
}

func TestParseHTMLCapsItems(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < MaxItems+10; i++ {
		fmt.Fprintf(&b, `<div role="listitem"><h3>Event %d</h3></div>`, i)
	}
	b.WriteString("</body></html>")

	events, err := ParseHTML(strings.NewReader(b.String()), parseNow)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != MaxItems {
		t.Errorf("got %d events, want %d", len(events), MaxItems)
	}
}

func TestParseHTMLEmptyPage(t *testing.T) {
	t.Parallel()

	events, err := ParseHTML(strings.NewReader("<html><body><p>Nothing</p></body></html>"), parseNow)
	if err != nil || len(events) != 0 {
		t.Errorf("ParseHTML() = %v, %v", events, err)
	}
}
