package domain

// DashboardSummary is the precomputed dashboard aggregate. Refreshed after
// every upload; never derived client-side.
type DashboardSummary struct {
	TotalRecords         int64            `json:"totalRecords"`
	RatingDistribution   map[string]int64 `json:"ratingDistribution"`
	CategoryDistribution map[string]int64 `json:"categoryDistribution,omitempty"`
	DatasetCount         int64            `json:"datasetCount"`
}

// TotalRatingCount sums the rating distribution. Returns 0 when the
// distribution is empty or absent.
func (s DashboardSummary) TotalRatingCount() int64 {
	var total int64
	for _, count := range s.RatingDistribution {
		total += count
	}
	return total
}
