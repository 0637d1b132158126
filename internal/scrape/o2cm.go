package scrape

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/filledcard/ingest-cli/internal/fetcher"
	"github.com/filledcard/ingest-cli/internal/model"
)

const o2cmMaxEvents = 20

// Event is one competition listed on the O2CM event index.
type Event struct {
	Name string
	URL  string
}

// ParseEventList extracts competition links from the event index page.
// O2CM result links look like /ordermanager/results3.asp?event=CODE.
func ParseEventList(doc []byte, baseURL string) []Event {
	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil
	}

	var events []Event
	gq.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !strings.Contains(href, "results3.asp") && !strings.Contains(href, "results2.asp") {
			return
		}
		name := strings.TrimSpace(a.Text())
		if name == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		events = append(events, Event{Name: name, URL: base.ResolveReference(ref).String()})
	})

	if len(events) > o2cmMaxEvents {
		events = events[:o2cmMaxEvents]
	}
	return events
}

// ParseEventResults extracts placement rows from a single competition page.
// Rows with fewer than four cells, or missing a style or lead dancer name,
// are skipped rather than errored.
func ParseEventResults(doc []byte, event Event) []model.RawResult {
	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil
	}

	var results []model.RawResult
	gq.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header
			}
			var cells []string
			row.Find("td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(td.Text()))
			})
			if len(cells) < 4 {
				return
			}

			r := model.RawResult{
				CompetitionName:  event.Name,
				CompetitionDate:  extractDate(event.Name),
				Style:            cells[0],
				Level:            cells[1],
				Placement:        parseLeadingInt(cells[2]),
				TotalCompetitors: parseLeadingInt(cells[3]),
				Source:           model.SourceO2CM,
				ExternalID:       resultExternalID(event.URL, cells),
			}
			if len(cells) > 4 {
				r.Dancer1Name = cells[4]
			}
			if len(cells) > 5 {
				r.Dancer2Name = cells[5]
			}
			if r.Style != "" && r.Dancer1Name != "" {
				results = append(results, r)
			}
		})
	})
	return results
}

var yearRe = regexp.MustCompile(`20\d{2}`)

// extractDate guesses a date from the year in a competition name.
func extractDate(competitionName string) string {
	if m := yearRe.FindString(competitionName); m != "" {
		return m + "-01-01"
	}
	return ""
}

var intRe = regexp.MustCompile(`\d+`)

// parseLeadingInt pulls the first integer out of strings like "1st" or "12".
func parseLeadingInt(s string) *int {
	m := intRe.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// resultExternalID derives a stable id from the event URL and row content,
// unique within the O2CM source.
func resultExternalID(eventURL string, cells []string) string {
	h := fnv.New64a()
	h.Write([]byte(eventURL))
	for _, c := range cells {
		h.Write([]byte{0})
		h.Write([]byte(c))
	}
	return fmt.Sprintf("o2cm_%016x", h.Sum64())
}

// O2CMLive fetches the event index and every listed competition page.
// The fetcher's per-host limiter throttles event-page requests.
type O2CMLive struct {
	fetcher fetcher.Fetcher
	baseURL string
}

// NewO2CMLive creates the live O2CM extractor against the given base URL.
func NewO2CMLive(f fetcher.Fetcher, baseURL string) *O2CMLive {
	return &O2CMLive{fetcher: f, baseURL: baseURL}
}

func (s *O2CMLive) Name() string { return "o2cm_live" }

func (s *O2CMLive) Extract(ctx context.Context) ([]model.RawResult, Outcome) {
	log := zap.L().With(zap.String("component", "scrape.o2cm"))

	doc, err := s.fetcher.Get(ctx, s.baseURL+"/ordermanager/eventlist.asp")
	if err != nil {
		log.Warn("event list fetch failed", zap.Error(err))
		return nil, Unavailable
	}

	events := ParseEventList(doc, s.baseURL)
	if len(events) == 0 {
		return nil, Inconclusive
	}
	log.Info("found events", zap.Int("count", len(events)))

	var results []model.RawResult
	for _, ev := range events {
		page, err := s.fetcher.Get(ctx, ev.URL)
		if err != nil {
			log.Warn("event page fetch failed", zap.String("event", ev.Name), zap.Error(err))
			continue
		}
		rows := ParseEventResults(page, ev)
		log.Info("scraped event", zap.String("event", ev.Name), zap.Int("results", len(rows)))
		results = append(results, rows...)
	}

	if len(results) == 0 {
		return nil, Inconclusive
	}
	return results, Success
}

// O2CMSample is the last-resort fixed dataset for the results source.
type O2CMSample struct{}

func (O2CMSample) Name() string { return "o2cm_sample" }

func (O2CMSample) Extract(_ context.Context) ([]model.RawResult, Outcome) {
	intp := func(n int) *int { return &n }
	return []model.RawResult{
		{
			CompetitionName:  "Ohio Star Ball 2024",
			CompetitionDate:  "2024-11-15",
			Location:         "Columbus, OH",
			Style:            "WALTZ",
			Level:            "GOLD",
			Placement:        intp(1),
			TotalCompetitors: intp(8),
			Dancer1Name:      "Alexandra Thompson",
			Dancer2Name:      "Benjamin Clark",
			Source:           model.SourceO2CM,
			ExternalID:       "o2cm_sample_001",
		},
		{
			CompetitionName:  "Emerald Ball 2024",
			CompetitionDate:  "2024-05-10",
			Location:         "Los Angeles, CA",
			Style:            "CHA_CHA",
			Level:            "SILVER",
			Placement:        intp(2),
			TotalCompetitors: intp(12),
			Dancer1Name:      "Christina Davis",
			Dancer2Name:      "Daniel Evans",
			Source:           model.SourceO2CM,
			ExternalID:       "o2cm_sample_002",
		},
		{
			CompetitionName:  "Manhattan Amateur Classic 2024",
			CompetitionDate:  "2024-08-22",
			Location:         "New York, NY",
			Style:            "TANGO",
			Level:            "NOVICE",
			Placement:        intp(3),
			TotalCompetitors: intp(15),
			Dancer1Name:      "Elizabeth Foster",
			Dancer2Name:      "Michael Santos",
			Source:           model.SourceO2CM,
			ExternalID:       "o2cm_sample_003",
		},
	}, Success
}
