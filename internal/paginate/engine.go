// Package paginate drives repeated page fetches against the upstream API
// under a wall-clock budget, producing either a complete result set or a
// resumable chunk.
package paginate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"unleashed-proxy/internal/unleashed"
)

type StopReason string

const (
	// AllPagesRetrieved means the last page reported by upstream metadata
	// was fetched.
	AllPagesRetrieved StopReason = "AllPagesRetrieved"
	// EndOfData means upstream returned an empty page. An empty page is
	// treated as authoritative end-of-data even when the metadata claims
	// more pages exist.
	EndOfData StopReason = "EndOfData"
	// PageLimitReached means the per-invocation page budget was spent; the
	// caller gets a continuation page to resume from.
	PageLimitReached StopReason = "PageLimitReached"
	// DeadlineExceeded means the invocation ran out of wall-clock budget.
	// Not an error: the partial result is returned with a continuation.
	DeadlineExceeded StopReason = "DeadlineExceeded"
	// UpstreamError means the very first page failed, so there is nothing
	// useful to return.
	UpstreamError StopReason = "UpstreamError"
	// PartialSuccess means a later page failed after at least one page
	// succeeded; the pages gathered so far are returned.
	PartialSuccess StopReason = "PartialSuccess"
)

// PageFetcher issues one signed request for one page.
type PageFetcher interface {
	FetchPage(ctx context.Context, resource unleashed.Resource, filters map[string]string, pageNumber int) (*unleashed.Page, error)
}

// Result is what one invocation of the engine gathered.
type Result struct {
	Items      []unleashed.Record
	StopReason StopReason
	StartPage  int
	// LastPage is the last page fetched successfully. Zero when no page
	// succeeded.
	LastPage int
	// TotalPages is the upstream page count, or zero when never observed.
	TotalPages int
	TotalItems int
	// Err holds the fetch failure behind UpstreamError or PartialSuccess.
	Err error
}

// Complete reports whether the result covers the dataset from its start page
// through the end of the data.
func (r Result) Complete() bool {
	return r.StopReason == AllPagesRetrieved || r.StopReason == EndOfData
}

// HasMorePages reports whether a follow-up call could retrieve more data.
// When the page count was never observed it is false only for EndOfData.
func (r Result) HasMorePages() bool {
	switch r.StopReason {
	case AllPagesRetrieved, EndOfData:
		return false
	}
	if r.TotalPages > 0 {
		return r.LastPage < r.TotalPages
	}
	return true
}

// NextStartPage is the page a follow-up call should start from, or zero when
// there is nothing left to fetch.
func (r Result) NextStartPage() int {
	if !r.HasMorePages() {
		return 0
	}
	if r.LastPage == 0 {
		return r.StartPage
	}
	return r.LastPage + 1
}

// Engine fetches pages strictly sequentially: page one's metadata decides
// whether further pages exist at all, and the upstream API does not promise
// consistent results under concurrent pagination.
type Engine struct {
	Fetcher PageFetcher
	// Margin is the wall-clock budget reserved below the invocation
	// deadline so an in-flight request is never abandoned mid-response.
	Margin time.Duration
	// DefaultBudget bounds the invocation when the context carries no
	// deadline of its own.
	DefaultBudget time.Duration
	Logger        *slog.Logger
}

func NewEngine(fetcher PageFetcher) *Engine {
	return &Engine{
		Fetcher:       fetcher,
		Margin:        10 * time.Second,
		DefaultBudget: 2 * time.Minute,
		Logger:        slog.Default(),
	}
}

// Paginate fetches pages from startPage until the data ends, the page limit
// is spent, the deadline nears, or a fetch fails. A pageLimit of zero means
// unbounded. The deadline is only ever checked between page fetches.
func (e *Engine) Paginate(ctx context.Context, resource unleashed.Resource, filters map[string]string, startPage int, pageLimit int) Result {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(e.DefaultBudget)
	}
	limiter := rate.NewLimiter(rate.Every(resource.FetchDelay), 1)

	result := Result{
		StartPage: startPage,
		Items:     make([]unleashed.Record, 0),
	}
	pageNumber := startPage
	fetched := 0
	for {
		if fetched > 0 {
			if time.Until(deadline) < e.Margin {
				result.StopReason = DeadlineExceeded
				return result
			}
			if err := limiter.Wait(ctx); err != nil {
				result.StopReason = DeadlineExceeded
				return result
			}
		}
		page, err := e.Fetcher.FetchPage(ctx, resource, filters, pageNumber)
		if err != nil {
			result.Err = err
			if fetched == 0 {
				result.StopReason = UpstreamError
			} else {
				result.StopReason = PartialSuccess
				e.Logger.Warn("page fetch failed after partial aggregation",
					slog.String("resource", string(resource.Type)),
					slog.Int("page", pageNumber),
					slog.String("error", err.Error()))
			}
			return result
		}
		fetched++
		result.LastPage = pageNumber
		result.TotalPages = page.Pagination.NumberOfPages
		result.TotalItems = page.Pagination.NumberOfItems
		if len(page.Items) == 0 {
			result.StopReason = EndOfData
			return result
		}
		result.Items = append(result.Items, page.Items...)
		if result.TotalPages > 0 && pageNumber >= result.TotalPages {
			result.StopReason = AllPagesRetrieved
			return result
		}
		if pageLimit > 0 && fetched >= pageLimit {
			result.StopReason = PageLimitReached
			return result
		}
		pageNumber++
	}
}
