// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

package scraper

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tomtom215/eventscope/internal/metrics"
	"github.com/tomtom215/eventscope/internal/models"
	"github.com/tomtom215/eventscope/internal/providers"
	"github.com/tomtom215/eventscope/internal/providers/serpapi"
)

// MaxItems is the soft cap on events taken from one page.
const MaxItems = 40

var dateLine = regexp.MustCompile(`^(Mon|Tue|Wed|Thu|Fri|Sat|Sun),? ?[A-Z][a-z]{2} \d{1,2}`)

// ParseHTML extracts events from a search results page. Embedded JSON-LD
// Event objects win; result cards are the fallback when none are present.
func ParseHTML(r io.Reader, now time.Time) ([]models.Event, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", providers.ErrMalformedResponse, err)
	}

	events := parseJSONLD(doc, now)
	if len(events) == 0 {
		events = parseCards(doc, now)
	}
	if len(events) > MaxItems {
		events = events[:MaxItems]
	}
	return events, nil
}

// ========================================
// JSON-LD
// ========================================

func parseJSONLD(doc *html.Node, now time.Time) []models.Event {
	var events []models.Event
	walk(doc, func(n *html.Node) bool {
		if n.DataAtom != atom.Script || !strings.EqualFold(attr(n, "type"), "application/ld+json") {
			return true
		}
		var payload interface{}
		if err := json.Unmarshal([]byte(rawText(n)), &payload); err != nil {
			metrics.RecordSkippedItem(Name)
			return false
		}
		for _, obj := range eventObjects(payload) {
			if ev, ok := jsonLDEvent(obj, len(events), now); ok {
				events = append(events, ev)
			}
		}
		return false
	})
	return events
}

// eventObjects flattens arrays and @graph containers into Event-typed objects
func eventObjects(v interface{}) []map[string]interface{} {
	switch t := v.(type) {
	case []interface{}:
		var out []map[string]interface{}
		for _, item := range t {
			out = append(out, eventObjects(item)...)
		}
		return out
	case map[string]interface{}:
		if graph, ok := t["@graph"]; ok {
			return eventObjects(graph)
		}
		if isEventType(t["@type"]) {
			return []map[string]interface{}{t}
		}
	}
	return nil
}

// isEventType accepts Event and its schema.org subtypes (MusicEvent, SportsEvent...)
func isEventType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.HasSuffix(t, "Event")
	case []interface{}:
		for _, item := range t {
			if isEventType(item) {
				return true
			}
		}
	}
	return false
}

func jsonLDEvent(obj map[string]interface{}, n int, now time.Time) (models.Event, bool) {
	name := str(obj["name"])
	if name == "" {
		metrics.RecordSkippedItem(Name)
		return models.Event{}, false
	}
	link := str(obj["url"])
	ev := models.Event{
		ID:          eventID(link, name, n),
		Source:      Source,
		Name:        name,
		Description: str(obj["description"]),
		URL:         link,
		Start:       str(obj["startDate"]),
		End:         str(obj["endDate"]),
		Image:       imageURL(obj["image"]),
	}
	if start, end, ok := serpapi.ParseWhen(ev.Start, now); ok {
		ev.Start = start
		if ev.End == "" {
			ev.End = end
		}
	}

	loc, _ := obj["location"].(map[string]interface{})
	if loc == nil {
		if list, ok := obj["location"].([]interface{}); ok && len(list) > 0 {
			loc, _ = list[0].(map[string]interface{})
		}
	}
	if loc != nil {
		ev.Venue = str(loc["name"])
		switch addr := loc["address"].(type) {
		case string:
			if ev.Venue == "" {
				ev.Venue = addr
			}
		case map[string]interface{}:
			ev.City = str(addr["addressLocality"])
			ev.Country = str(addr["addressCountry"])
			if c, ok := addr["addressCountry"].(map[string]interface{}); ok {
				ev.Country = str(c["name"])
			}
		}
		if g, ok := loc["geo"].(map[string]interface{}); ok {
			lat, okLat := number(g["latitude"])
			lon, okLon := number(g["longitude"])
			if okLat && okLon {
				ev.Latitude, ev.Longitude = models.Float(lat), models.Float(lon)
			}
		}
	}
	return ev, true
}

// ========================================
// Result cards
// ========================================

func parseCards(doc *html.Node, now time.Time) []models.Event {
	var events []models.Event
	walk(doc, func(n *html.Node) bool {
		if len(events) >= MaxItems {
			return false
		}
		if n.DataAtom != atom.Div || attr(n, "role") != "listitem" {
			return true
		}
		if ev, ok := cardEvent(n, len(events), now); ok {
			events = append(events, ev)
		}
		return false
	})
	return events
}

func cardEvent(card *html.Node, n int, now time.Time) (models.Event, bool) {
	var title, date, link string
	walk(card, func(c *html.Node) bool {
		switch c.DataAtom {
		case atom.A:
			if link == "" {
				link = unwrapGoogleLink(attr(c, "href"))
			}
		case atom.Div, atom.Span, atom.H3, atom.H2:
			text := textContent(c)
			if title == "" && isTitleNode(c) && text != "" {
				title = text
			}
			if date == "" && dateLine.MatchString(text) {
				date = text
			}
		}
		return true
	})
	if title == "" {
		title = firstHeading(card)
	}
	if title == "" {
		metrics.RecordSkippedItem(Name)
		return models.Event{}, false
	}

	ev := models.Event{
		ID:     eventID(link, title, n),
		Source: Source,
		Name:   title,
		URL:    link,
		Start:  date,
	}
	if start, end, ok := serpapi.ParseWhen(date, now); ok {
		ev.Start, ev.End = start, end
	}
	return ev, true
}

// isTitleNode matches the class pair Google uses for card titles
func isTitleNode(n *html.Node) bool {
	class := attr(n, "class")
	return strings.Contains(class, "BNeawe") && strings.Contains(class, "AP7Wnd")
}

func firstHeading(n *html.Node) string {
	var out string
	walk(n, func(c *html.Node) bool {
		if out != "" {
			return false
		}
		if c.DataAtom == atom.H3 || c.DataAtom == atom.H2 || c.DataAtom == atom.Strong {
			out = textContent(c)
			return false
		}
		return true
	})
	return out
}

// unwrapGoogleLink turns "/url?q=https://target&sa=U" into the target URL
func unwrapGoogleLink(href string) string {
	if !strings.HasPrefix(href, "/url?") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if q := u.Query().Get("q"); q != "" {
		return q
	}
	return href
}

// ========================================
// Helpers
// ========================================

func eventID(link, title string, n int) string {
	if link != "" {
		return link
	}
	runes := []rune(title)
	if len(runes) > 30 {
		runes = runes[:30]
	}
	return fmt.Sprintf("scraperapi:%d:%s", n, string(runes))
}

// walk visits n depth-first; fn returning false skips the node's children
func walk(n *html.Node, fn func(*html.Node) bool) {
	if n.Type == html.ElementNode && !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent returns the node's text with whitespace collapsed
func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// rawText returns the unmodified text children of n (script bodies)
func rawText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func str(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func number(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func imageURL(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []interface{}:
		if len(t) > 0 {
			return imageURL(t[0])
		}
	case map[string]interface{}:
		return str(t["url"])
	}
	return ""
}
