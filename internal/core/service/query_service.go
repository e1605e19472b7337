package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
)

// searchSortField is the fixed sort applied to keyword searches.
const searchSortField = "issuerName"

// QueryState is a consistent snapshot of the record listing.
type QueryState struct {
	Records       []domain.FinancialRecord
	TotalRecords  int64
	CurrentPage   int
	PageSize      int
	SearchKeyword string
}

// QueryService owns pagination and filter state for the record dashboard.
// Every request carries a sequence number taken under the lock; a response
// is applied only while its sequence is still the newest, so a slow earlier
// request can never overwrite the result of a later one. A failed request
// leaves the last good page untouched.
type QueryService struct {
	client   ports.APIClient
	validate *requestValidator
	log      zerolog.Logger

	mu            sync.Mutex
	seq           uint64
	records       []domain.FinancialRecord
	totalRecords  int64
	currentPage   int
	pageSize      int
	searchKeyword string
}

func NewQueryService(client ports.APIClient, pageSize int, log zerolog.Logger) *QueryService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &QueryService{
		client:   client,
		validate: newRequestValidator(),
		log:      log,
		pageSize: pageSize,
	}
}

// LoadPage fetches one page of records and, on success, replaces the
// listing state atomically.
func (s *QueryService) LoadPage(ctx context.Context, page int) error {
	s.mu.Lock()
	s.seq++
	issued := s.seq
	size := s.pageSize
	s.mu.Unlock()

	result, err := s.client.Records(ctx, page, size)

	s.mu.Lock()
	defer s.mu.Unlock()
	if issued != s.seq {
		s.log.Debug().Uint64("seq", issued).Int("page", page).Msg("discarding stale page response")
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Int("page", page).Msg("page load failed, keeping previous records")
		return err
	}

	s.records = result.Content
	s.totalRecords = result.TotalElements
	s.currentPage = page
	return nil
}

// NextPage advances one page. No-op when the next page would start at or
// past the total record count.
func (s *QueryService) NextPage(ctx context.Context) error {
	s.mu.Lock()
	if int64(s.currentPage+1)*int64(s.pageSize) >= s.totalRecords {
		s.mu.Unlock()
		return nil
	}
	target := s.currentPage + 1
	s.mu.Unlock()
	return s.LoadPage(ctx, target)
}

// PrevPage goes back one page. No-op on the first page.
func (s *QueryService) PrevPage(ctx context.Context) error {
	s.mu.Lock()
	if s.currentPage == 0 {
		s.mu.Unlock()
		return nil
	}
	target := s.currentPage - 1
	s.mu.Unlock()
	return s.LoadPage(ctx, target)
}

// Search issues a keyword filter sorted by issuer name ascending. A search
// always starts a fresh result set on page 0, whatever page was showing.
func (s *QueryService) Search(ctx context.Context, keyword string) error {
	s.mu.Lock()
	size := s.pageSize
	s.mu.Unlock()

	return s.Filter(ctx, ports.FilterInput{
		SearchKeyword: keyword,
		Page:          0,
		Size:          size,
		SortBy:        searchSortField,
		SortDirection: "ASC",
	})
}

// Filter issues a full filter request and replaces the listing state on
// success. Search delegates here with a fixed sort.
func (s *QueryService) Filter(ctx context.Context, in ports.FilterInput) error {
	if err := s.validate.Struct(in); err != nil {
		return err
	}

	s.mu.Lock()
	s.seq++
	issued := s.seq
	s.mu.Unlock()

	result, err := s.client.Filter(ctx, in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if issued != s.seq {
		s.log.Debug().Uint64("seq", issued).Str("keyword", in.SearchKeyword).Msg("discarding stale filter response")
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Str("keyword", in.SearchKeyword).Msg("filter failed, keeping previous records")
		return err
	}

	s.records = result.Content
	s.totalRecords = result.TotalElements
	s.currentPage = in.Page
	s.searchKeyword = in.SearchKeyword
	return nil
}

// Snapshot returns a copy of the current listing state.
func (s *QueryService) Snapshot() QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]domain.FinancialRecord, len(s.records))
	copy(records, s.records)
	return QueryState{
		Records:       records,
		TotalRecords:  s.totalRecords,
		CurrentPage:   s.currentPage,
		PageSize:      s.pageSize,
		SearchKeyword: s.searchKeyword,
	}
}
