package paginate_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"unleashed-proxy/internal/paginate"
	"unleashed-proxy/internal/unleashed"
)

type fakeFetcher struct {
	pages     map[int]*unleashed.Page
	failures  map[int]error
	requested []int
}

func (f *fakeFetcher) FetchPage(ctx context.Context, resource unleashed.Resource, filters map[string]string, pageNumber int) (*unleashed.Page, error) {
	f.requested = append(f.requested, pageNumber)
	if err, ok := f.failures[pageNumber]; ok {
		return nil, err
	}
	page, ok := f.pages[pageNumber]
	if !ok {
		return nil, fmt.Errorf("no fixture for page %d", pageNumber)
	}
	return page, nil
}

// dataset builds totalPages pages of two items each, with upstream-style
// pagination metadata on every page.
func dataset(totalPages int) map[int]*unleashed.Page {
	pages := make(map[int]*unleashed.Page, totalPages)
	for n := 1; n <= totalPages; n++ {
		pages[n] = &unleashed.Page{
			Items: []unleashed.Record{
				{"Guid": fmt.Sprintf("page%d-a", n)},
				{"Guid": fmt.Sprintf("page%d-b", n)},
			},
			Pagination: unleashed.Pagination{
				NumberOfItems: totalPages * 2,
				NumberOfPages: totalPages,
				PageNumber:    n,
				PageSize:      2,
			},
		}
	}
	return pages
}

func testResource() unleashed.Resource {
	return unleashed.Resource{
		Type:             unleashed.SalesOrders,
		Path:             "SalesOrders",
		DefaultPageSize:  1000,
		DefaultChunkSize: 15,
		FetchDelay:       time.Millisecond,
	}
}

func newTestEngine(fetcher *fakeFetcher) *paginate.Engine {
	engine := paginate.NewEngine(fetcher)
	engine.DefaultBudget = time.Minute
	return engine
}

func TestPaginateRetrievesAllPages(t *testing.T) {
	fetcher := &fakeFetcher{pages: dataset(3)}
	engine := newTestEngine(fetcher)
	result := engine.Paginate(context.Background(), testResource(), nil, 1, 0)
	if result.StopReason != paginate.AllPagesRetrieved {
		t.Fatalf("Expected AllPagesRetrieved, got %s", result.StopReason)
	}
	if len(result.Items) != 6 {
		t.Fatalf("Expected 6 items, got %d", len(result.Items))
	}
	if result.LastPage != 3 || result.TotalPages != 3 {
		t.Fatalf("Unexpected page accounting: %+v", result)
	}
	if result.HasMorePages() || result.NextStartPage() != 0 {
		t.Fatalf("Expected no continuation, got hasMore=%v next=%d", result.HasMorePages(), result.NextStartPage())
	}
	for _, page := range fetcher.requested {
		if page > 3 {
			t.Fatalf("Requested page %d beyond the known total", page)
		}
	}
}

func TestPaginateChunkedResumability(t *testing.T) {
	pages := dataset(5)
	resource := testResource()
	var chunked []unleashed.Record

	first := newTestEngine(&fakeFetcher{pages: pages}).Paginate(context.Background(), resource, nil, 1, 2)
	if first.StopReason != paginate.PageLimitReached {
		t.Fatalf("Expected PageLimitReached, got %s", first.StopReason)
	}
	if !first.HasMorePages() || first.NextStartPage() != 3 {
		t.Fatalf("Expected continuation at page 3, got hasMore=%v next=%d", first.HasMorePages(), first.NextStartPage())
	}
	chunked = append(chunked, first.Items...)

	second := newTestEngine(&fakeFetcher{pages: pages}).Paginate(context.Background(), resource, nil, first.NextStartPage(), 2)
	if !second.HasMorePages() || second.NextStartPage() != 5 {
		t.Fatalf("Expected continuation at page 5, got hasMore=%v next=%d", second.HasMorePages(), second.NextStartPage())
	}
	chunked = append(chunked, second.Items...)

	last := newTestEngine(&fakeFetcher{pages: pages}).Paginate(context.Background(), resource, nil, second.NextStartPage(), 2)
	if last.StopReason != paginate.AllPagesRetrieved {
		t.Fatalf("Expected AllPagesRetrieved, got %s", last.StopReason)
	}
	if last.HasMorePages() || last.NextStartPage() != 0 {
		t.Fatalf("Expected no continuation, got hasMore=%v next=%d", last.HasMorePages(), last.NextStartPage())
	}
	chunked = append(chunked, last.Items...)

	full := newTestEngine(&fakeFetcher{pages: pages}).Paginate(context.Background(), resource, nil, 1, 0)
	if len(chunked) != len(full.Items) {
		t.Fatalf("Chunked total %d differs from full fetch %d", len(chunked), len(full.Items))
	}
	for i := range full.Items {
		if chunked[i]["Guid"] != full.Items[i]["Guid"] {
			t.Fatalf("Chunked item %d differs: %v vs %v", i, chunked[i], full.Items[i])
		}
	}
}

func TestPaginateEmptyPageStopsEarly(t *testing.T) {
	pages := dataset(10)
	pages[3] = &unleashed.Page{
		Items: []unleashed.Record{},
		Pagination: unleashed.Pagination{
			NumberOfItems: 20,
			NumberOfPages: 10,
			PageNumber:    3,
		},
	}
	fetcher := &fakeFetcher{pages: pages}
	result := newTestEngine(fetcher).Paginate(context.Background(), testResource(), nil, 1, 0)
	if result.StopReason != paginate.EndOfData {
		t.Fatalf("Expected EndOfData, got %s", result.StopReason)
	}
	if len(result.Items) != 4 {
		t.Fatalf("Expected the first two pages only, got %d items", len(result.Items))
	}
	if result.HasMorePages() {
		t.Fatalf("An empty page is authoritative end-of-data")
	}
	if max := fetcher.requested[len(fetcher.requested)-1]; max != 3 {
		t.Fatalf("Expected the loop to stop at page 3, last request was %d", max)
	}
}

func TestPaginateFirstPageFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{
		pages:    dataset(3),
		failures: map[int]error{1: &unleashed.UpstreamError{StatusCode: 500, Body: "boom"}},
	}
	result := newTestEngine(fetcher).Paginate(context.Background(), testResource(), nil, 1, 0)
	if result.StopReason != paginate.UpstreamError {
		t.Fatalf("Expected UpstreamError, got %s", result.StopReason)
	}
	if len(result.Items) != 0 || result.Err == nil {
		t.Fatalf("Expected no items and an error, got %+v", result)
	}
	if result.TotalPages != 0 {
		t.Fatalf("Page count was never observed, got %d", result.TotalPages)
	}
	if !result.HasMorePages() || result.NextStartPage() != 1 {
		t.Fatalf("A failed first page should still be resumable from the start page")
	}
}

func TestPaginateLaterPageFailureIsPartial(t *testing.T) {
	fetcher := &fakeFetcher{
		pages:    dataset(5),
		failures: map[int]error{3: &unleashed.UpstreamError{StatusCode: 500, Body: "boom"}},
	}
	result := newTestEngine(fetcher).Paginate(context.Background(), testResource(), nil, 1, 0)
	if result.StopReason != paginate.PartialSuccess {
		t.Fatalf("Expected PartialSuccess, got %s", result.StopReason)
	}
	if len(result.Items) != 4 || result.LastPage != 2 {
		t.Fatalf("Expected pages 1-2, got %d items up to page %d", len(result.Items), result.LastPage)
	}
	if !result.HasMorePages() || result.NextStartPage() != 3 {
		t.Fatalf("Expected a continuation at the failed page, got next=%d", result.NextStartPage())
	}
}

func TestPaginateStopsBeforeDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	fetcher := &fakeFetcher{pages: dataset(100)}
	engine := newTestEngine(fetcher)
	engine.Margin = 10 * time.Second
	result := engine.Paginate(ctx, testResource(), nil, 1, 0)
	if result.StopReason != paginate.DeadlineExceeded {
		t.Fatalf("Expected DeadlineExceeded, got %s", result.StopReason)
	}
	if len(fetcher.requested) != 1 {
		t.Fatalf("Deadline is checked between pages, expected exactly one fetch, got %d", len(fetcher.requested))
	}
	if !result.HasMorePages() || result.NextStartPage() != 2 {
		t.Fatalf("A truncated run must be resumable, got next=%d", result.NextStartPage())
	}
}

func TestPaginateSinglePageLimit(t *testing.T) {
	fetcher := &fakeFetcher{pages: dataset(5)}
	result := newTestEngine(fetcher).Paginate(context.Background(), testResource(), nil, 2, 1)
	if result.StopReason != paginate.PageLimitReached {
		t.Fatalf("Expected PageLimitReached, got %s", result.StopReason)
	}
	if len(result.Items) != 2 || result.StartPage != 2 || result.LastPage != 2 {
		t.Fatalf("Expected exactly page 2, got %+v", result)
	}
	if result.NextStartPage() != 3 {
		t.Fatalf("Expected continuation at page 3, got %d", result.NextStartPage())
	}
}

func TestPaginateTerminatesWithinBounds(t *testing.T) {
	fetcher := &fakeFetcher{pages: dataset(7)}
	result := newTestEngine(fetcher).Paginate(context.Background(), testResource(), nil, 1, 50)
	if result.StopReason != paginate.AllPagesRetrieved {
		t.Fatalf("Expected AllPagesRetrieved, got %s", result.StopReason)
	}
	if len(fetcher.requested) != 7 {
		t.Fatalf("Expected exactly 7 fetches, got %d", len(fetcher.requested))
	}
}
