package domain

// FinancialRecord is a single rated issuer row. Read-only on the client;
// ratios and the rating are computed server-side.
type FinancialRecord struct {
	ID                     int64    `json:"id"`
	IssuerName             string   `json:"issuerName"`
	Industry               string   `json:"industry"`
	Country                string   `json:"country"`
	Revenue                float64  `json:"revenue"`
	EBITDA                 float64  `json:"ebitda"`
	TotalDebt              float64  `json:"totalDebt"`
	InterestExpense        *float64 `json:"interestExpense,omitempty"`
	CurrentAssets          *float64 `json:"currentAssets,omitempty"`
	CurrentLiabilities     *float64 `json:"currentLiabilities,omitempty"`
	DebtToEBITDA           *float64 `json:"debtToEbitda,omitempty"`
	InterestCoverageRatio  *float64 `json:"interestCoverageRatio,omitempty"`
	LiquidityCoverageRatio *float64 `json:"liquidityCoverageRatio,omitempty"`
	Rating                 string   `json:"rating"`
	Category               string   `json:"category"`
	CalculatedAt           string   `json:"calculatedAt,omitempty"`
}

// RatingTier is the display-only quality band derived from a rating grade.
type RatingTier string

const (
	TierExcellent RatingTier = "excellent"
	TierGood      RatingTier = "good"
	TierFair      RatingTier = "fair"
	TierPoor      RatingTier = "poor"
)

var ratingTiers = map[string]RatingTier{
	"AAA":       TierExcellent,
	"AA_PLUS":   TierExcellent,
	"AA":        TierExcellent,
	"AA_MINUS":  TierExcellent,
	"A_PLUS":    TierGood,
	"A":         TierGood,
	"A_MINUS":   TierGood,
	"BBB_PLUS":  TierFair,
	"BBB":       TierFair,
	"BBB_MINUS": TierFair,
}

// TierForRating classifies a rating grade into its display tier. Unknown or
// sub-investment grades fall through to TierPoor.
func TierForRating(rating string) RatingTier {
	if tier, ok := ratingTiers[rating]; ok {
		return tier
	}
	return TierPoor
}
