package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
)

// recentDatasetLimit caps the recent-dataset list shown on the landing view.
const recentDatasetLimit = 5

// SummaryService combines two independent fetches, the dashboard summary
// and the user's dataset collection, into one consistent view. Each fetch
// owns its slice of state: one failing never blanks out the other's last
// good value. Both slices are sequence-guarded so an older refresh cannot
// clobber a newer one.
type SummaryService struct {
	client ports.APIClient
	log    zerolog.Logger

	mu             sync.Mutex
	summarySeq     uint64
	datasetSeq     uint64
	summary        domain.DashboardSummary
	recentDatasets []domain.Dataset
	datasetsLoaded bool
}

func NewSummaryService(client ports.APIClient, log zerolog.Logger) *SummaryService {
	return &SummaryService{client: client, log: log}
}

// Refresh issues the summary and dataset fetches in parallel and waits for
// both. The returned error joins whatever failed; partial results are still
// applied.
func (s *SummaryService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.summarySeq++
	s.datasetSeq++
	summaryIssued := s.summarySeq
	datasetIssued := s.datasetSeq
	s.mu.Unlock()

	var wg sync.WaitGroup
	var summaryErr, datasetErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		summaryErr = s.refreshSummary(ctx, summaryIssued)
	}()
	go func() {
		defer wg.Done()
		datasetErr = s.refreshDatasets(ctx, datasetIssued)
	}()
	wg.Wait()

	return errors.Join(summaryErr, datasetErr)
}

func (s *SummaryService) refreshSummary(ctx context.Context, issued uint64) error {
	summary, err := s.client.Summary(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if issued != s.summarySeq {
		s.log.Debug().Uint64("seq", issued).Msg("discarding stale summary response")
		return nil
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("summary fetch failed, keeping previous value")
		return err
	}
	s.summary = *summary
	return nil
}

func (s *SummaryService) refreshDatasets(ctx context.Context, issued uint64) error {
	datasets, err := s.client.ListDatasets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if issued != s.datasetSeq {
		s.log.Debug().Uint64("seq", issued).Msg("discarding stale dataset response")
		return nil
	}
	s.datasetsLoaded = true
	if err != nil {
		s.log.Warn().Err(err).Msg("dataset fetch failed, keeping previous list")
		return err
	}
	s.recentDatasets = recentCompleted(datasets)
	return nil
}

// recentCompleted keeps the newest COMPLETED datasets, capped at
// recentDatasetLimit.
func recentCompleted(datasets []domain.Dataset) []domain.Dataset {
	completed := make([]domain.Dataset, 0, len(datasets))
	for _, d := range datasets {
		if d.Status == domain.DatasetCompleted {
			completed = append(completed, d)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].UploadedAt.After(completed[j].UploadedAt.Time)
	})
	if len(completed) > recentDatasetLimit {
		completed = completed[:recentDatasetLimit]
	}
	return completed
}

// Summary returns a copy of the last good dashboard summary; a zero value
// until the first successful fetch.
func (s *SummaryService) Summary() domain.DashboardSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := s.summary
	if s.summary.RatingDistribution != nil {
		clone.RatingDistribution = make(map[string]int64, len(s.summary.RatingDistribution))
		for k, v := range s.summary.RatingDistribution {
			clone.RatingDistribution[k] = v
		}
	}
	if s.summary.CategoryDistribution != nil {
		clone.CategoryDistribution = make(map[string]int64, len(s.summary.CategoryDistribution))
		for k, v := range s.summary.CategoryDistribution {
			clone.CategoryDistribution[k] = v
		}
	}
	return clone
}

// RecentDatasets returns a copy of the recent completed datasets and
// whether the list has been loaded at least once.
func (s *SummaryService) RecentDatasets() ([]domain.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	datasets := make([]domain.Dataset, len(s.recentDatasets))
	copy(datasets, s.recentDatasets)
	return datasets, s.datasetsLoaded
}

// TotalRatingCount sums the rating distribution; 0 when empty or absent.
func (s *SummaryService) TotalRatingCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary.TotalRatingCount()
}

// DeleteDataset removes a dataset server-side. The caller is expected to
// Refresh afterwards; the client never mutates the list locally.
func (s *SummaryService) DeleteDataset(ctx context.Context, id int64) error {
	if err := s.client.DeleteDataset(ctx, id); err != nil {
		s.log.Warn().Err(err).Int64("dataset_id", id).Msg("dataset delete failed")
		return err
	}
	s.log.Info().Int64("dataset_id", id).Msg("dataset deleted")
	return nil
}
