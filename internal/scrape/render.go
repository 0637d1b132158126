package scrape

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/filledcard/ingest-cli/internal/model"
	"github.com/filledcard/ingest-cli/internal/normalize"
)

// memberRowsJS reads member rows out of the rendered DOM.
const memberRowsJS = `(() => {
	const rows = document.querySelectorAll('table tbody tr, .member-row, .competitor');
	return Array.from(rows).map(row => {
		const cells = row.querySelectorAll('td, .cell');
		return {
			name: cells[0]?.textContent?.trim() || '',
			ndcaId: cells[1]?.textContent?.trim() || '',
			studio: cells[2]?.textContent?.trim() || '',
			state: cells[3]?.textContent?.trim() || '',
		};
	}).filter(d => d.name.length > 2);
})()`

type renderedRow struct {
	Name   string `json:"name"`
	NDCAID string `json:"ndcaId"`
	Studio string `json:"studio"`
	State  string `json:"state"`
}

// NDCARendered drives a headless browser to load the members page and reads
// rows via in-page evaluation. Used only when the static parse is
// inconclusive.
type NDCARendered struct {
	url         string
	loadTimeout time.Duration
	waitTimeout time.Duration
}

// NewNDCARendered creates the rendered-document fallback for the given URL.
func NewNDCARendered(url string, loadTimeout time.Duration) *NDCARendered {
	if loadTimeout == 0 {
		loadTimeout = 30 * time.Second
	}
	return &NDCARendered{
		url:         url,
		loadTimeout: loadTimeout,
		waitTimeout: 10 * time.Second,
	}
}

func (r *NDCARendered) Name() string { return "ndca_rendered" }

func (r *NDCARendered) Extract(ctx context.Context) ([]model.RawDancer, Outcome) {
	log := zap.L().With(zap.String("component", "scrape.rendered"))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.loadTimeout)
	defer cancelRun()

	if err := chromedp.Run(runCtx, chromedp.Navigate(r.url)); err != nil {
		log.Warn("rendered fetch failed", zap.String("url", r.url), zap.Error(err))
		return nil, Unavailable
	}

	// Wait for member content; a timeout degrades to whatever is present.
	waitCtx, cancelWait := context.WithTimeout(runCtx, r.waitTimeout)
	if err := chromedp.Run(waitCtx, chromedp.WaitReady("table, .member-list, .competitor-list", chromedp.ByQuery)); err != nil {
		log.Warn("timed out waiting for member content", zap.Error(err))
	}
	cancelWait()

	var raw []renderedRow
	if err := chromedp.Run(runCtx, chromedp.Evaluate(memberRowsJS, &raw)); err != nil {
		log.Warn("in-page evaluation failed", zap.Error(err))
		return nil, Unavailable
	}

	if len(raw) == 0 {
		return nil, Inconclusive
	}

	dancers := make([]model.RawDancer, 0, len(raw))
	for _, row := range raw {
		first, last := normalize.SplitName(row.Name)
		dancers = append(dancers, model.RawDancer{
			FirstName: first,
			LastName:  last,
			NDCAID:    row.NDCAID,
			Studio:    row.Studio,
			State:     row.State,
			Source:    model.SourceNDCA,
		})
	}
	return dancers, Success
}
