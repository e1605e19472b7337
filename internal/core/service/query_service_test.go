package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
)

func makeRecords(page, n int) []domain.FinancialRecord {
	records := make([]domain.FinancialRecord, n)
	for i := range records {
		records[i] = domain.FinancialRecord{
			ID:         int64(page*100 + i),
			IssuerName: fmt.Sprintf("Issuer %d-%d", page, i),
			Rating:     "BBB",
		}
	}
	return records
}

// pagedStub serves 45 records in pages of 20.
func pagedStub() *stubClient {
	return &stubClient{
		recordsFn: func(_ context.Context, page, size int) (*ports.RecordPage, error) {
			remaining := 45 - page*size
			if remaining > size {
				remaining = size
			}
			if remaining < 0 {
				remaining = 0
			}
			return &ports.RecordPage{Content: makeRecords(page, remaining), TotalElements: 45}, nil
		},
	}
}

func TestQueryService_LoadPage(t *testing.T) {
	svc := NewQueryService(pagedStub(), 20, zerolog.Nop())

	if err := svc.LoadPage(context.Background(), 0); err != nil {
		t.Fatalf("LoadPage failed: %v", err)
	}
	state := svc.Snapshot()
	if len(state.Records) != 20 || state.TotalRecords != 45 || state.CurrentPage != 0 {
		t.Fatalf("unexpected state: %d records, total %d, page %d",
			len(state.Records), state.TotalRecords, state.CurrentPage)
	}
}

func TestQueryService_PaginationGuards(t *testing.T) {
	client := pagedStub()
	svc := NewQueryService(client, 20, zerolog.Nop())
	ctx := context.Background()

	// prevPage from page 0 is a no-op and issues nothing.
	if err := svc.PrevPage(ctx); err != nil {
		t.Fatalf("PrevPage failed: %v", err)
	}
	if client.recordsCalls.Load() != 0 {
		t.Fatalf("PrevPage on page 0 must not issue a request")
	}

	// nextPage with unknown total (0) is also a no-op.
	if err := svc.NextPage(ctx); err != nil {
		t.Fatalf("NextPage failed: %v", err)
	}
	if client.recordsCalls.Load() != 0 {
		t.Fatalf("NextPage with no records must not issue a request")
	}

	// 45 records / 20 per page: pages 0, 1, 2 exist.
	if err := svc.LoadPage(ctx, 0); err != nil {
		t.Fatalf("LoadPage(0) failed: %v", err)
	}
	if err := svc.NextPage(ctx); err != nil {
		t.Fatalf("NextPage to 1 failed: %v", err)
	}
	if got := svc.Snapshot().CurrentPage; got != 1 {
		t.Fatalf("expected page 1, got %d", got)
	}
	if err := svc.NextPage(ctx); err != nil {
		t.Fatalf("NextPage to 2 failed: %v", err)
	}
	if got := svc.Snapshot().CurrentPage; got != 2 {
		t.Fatalf("expected page 2, got %d", got)
	}

	// (2+1)*20 = 60 >= 45: advancing further is blocked.
	calls := client.recordsCalls.Load()
	if err := svc.NextPage(ctx); err != nil {
		t.Fatalf("NextPage past end failed: %v", err)
	}
	if client.recordsCalls.Load() != calls {
		t.Fatalf("NextPage past the last page must not issue a request")
	}
	if got := svc.Snapshot().CurrentPage; got != 2 {
		t.Fatalf("expected to stay on page 2, got %d", got)
	}
}

func TestQueryService_SearchResetsPage(t *testing.T) {
	var captured ports.FilterInput
	client := pagedStub()
	client.filterFn = func(_ context.Context, in ports.FilterInput) (*ports.RecordPage, error) {
		captured = in
		return &ports.RecordPage{Content: makeRecords(0, 3), TotalElements: 3}, nil
	}
	svc := NewQueryService(client, 20, zerolog.Nop())
	ctx := context.Background()

	if err := svc.LoadPage(ctx, 0); err != nil {
		t.Fatalf("LoadPage failed: %v", err)
	}
	if err := svc.NextPage(ctx); err != nil {
		t.Fatalf("NextPage failed: %v", err)
	}

	if err := svc.Search(ctx, "energy"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	state := svc.Snapshot()
	if state.CurrentPage != 0 {
		t.Fatalf("search must reset to page 0, got %d", state.CurrentPage)
	}
	if state.SearchKeyword != "energy" {
		t.Fatalf("expected keyword recorded, got %q", state.SearchKeyword)
	}
	if captured.SortBy != "issuerName" || captured.SortDirection != "ASC" {
		t.Fatalf("expected fixed issuerName/ASC sort, got %s/%s", captured.SortBy, captured.SortDirection)
	}
	if captured.Page != 0 || captured.Size != 20 {
		t.Fatalf("unexpected paging in filter request: page %d size %d", captured.Page, captured.Size)
	}
}

func TestQueryService_FailureKeepsLastGoodPage(t *testing.T) {
	failing := false
	client := &stubClient{
		recordsFn: func(_ context.Context, page, size int) (*ports.RecordPage, error) {
			if failing {
				return nil, domain.ErrNetworkUnavailable
			}
			return &ports.RecordPage{Content: makeRecords(page, 20), TotalElements: 45}, nil
		},
	}
	svc := NewQueryService(client, 20, zerolog.Nop())
	ctx := context.Background()

	if err := svc.LoadPage(ctx, 0); err != nil {
		t.Fatalf("LoadPage failed: %v", err)
	}

	failing = true
	if err := svc.LoadPage(ctx, 1); !errors.Is(err, domain.ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}

	state := svc.Snapshot()
	if state.CurrentPage != 0 || len(state.Records) != 20 || state.TotalRecords != 45 {
		t.Fatalf("failed load corrupted state: page %d, %d records, total %d",
			state.CurrentPage, len(state.Records), state.TotalRecords)
	}
}

func TestQueryService_StaleResponseDiscarded(t *testing.T) {
	slowEntered := make(chan struct{})
	releaseSlow := make(chan struct{})
	client := &stubClient{
		recordsFn: func(_ context.Context, page, size int) (*ports.RecordPage, error) {
			if page == 0 {
				close(slowEntered)
				<-releaseSlow
			}
			return &ports.RecordPage{Content: makeRecords(page, 20), TotalElements: 45}, nil
		},
	}
	svc := NewQueryService(client, 20, zerolog.Nop())
	ctx := context.Background()

	// Request A (page 0) is issued first and stalls inside the client.
	done := make(chan error, 1)
	go func() { done <- svc.LoadPage(ctx, 0) }()
	<-slowEntered

	// Request B (page 1) is issued later but completes first.
	if err := svc.LoadPage(ctx, 1); err != nil {
		t.Fatalf("LoadPage(1) failed: %v", err)
	}

	// A's response arrives last and must be discarded.
	close(releaseSlow)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("stale LoadPage returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("stale LoadPage never returned")
	}

	state := svc.Snapshot()
	if state.CurrentPage != 1 {
		t.Fatalf("stale response overwrote newer result: page %d", state.CurrentPage)
	}
	if len(state.Records) == 0 || state.Records[0].IssuerName != "Issuer 1-0" {
		t.Fatalf("records belong to the stale request")
	}
}

func TestQueryService_FilterValidation(t *testing.T) {
	client := &stubClient{}
	svc := NewQueryService(client, 20, zerolog.Nop())

	err := svc.Filter(context.Background(), ports.FilterInput{Page: 0, Size: 0})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for zero page size, got %v", err)
	}
	if client.filterCalls.Load() != 0 {
		t.Fatalf("invalid filter must not reach the transport")
	}
}
