package ports

import (
	"context"

	"github.com/finrating/dashboard-client/internal/core/domain"
)

// AuthInput carries login credentials.
type AuthInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput carries a new-account profile. Email and password are
// validated client-side before the request is issued.
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// FilterInput is the full filter request the dashboard supports. The keyword
// search path fills only SearchKeyword, paging, and sort.
type FilterInput struct {
	Industries    []string `json:"industries,omitempty"`
	Countries     []string `json:"countries,omitempty"`
	Ratings       []string `json:"ratings,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	MinRevenue    *float64 `json:"minRevenue,omitempty"`
	MaxRevenue    *float64 `json:"maxRevenue,omitempty"`
	SearchKeyword string   `json:"searchKeyword,omitempty"`
	Page          int      `json:"page" validate:"gte=0"`
	Size          int      `json:"size" validate:"gt=0"`
	SortBy        string   `json:"sortBy"`
	SortDirection string   `json:"sortDirection" validate:"omitempty,oneof=ASC DESC"`
}

// RecordPage is one page of financial records plus the total row count.
type RecordPage struct {
	Content       []domain.FinancialRecord `json:"content"`
	TotalElements int64                    `json:"totalElements"`
}

// APIClient is the outbound contract with the remote rating API. The
// transport implementation normalizes every failure into the domain error
// taxonomy and resolves each call with exactly one terminal outcome.
type APIClient interface {
	Login(ctx context.Context, in AuthInput) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)

	Summary(ctx context.Context) (*domain.DashboardSummary, error)
	Records(ctx context.Context, page, size int) (*RecordPage, error)
	Filter(ctx context.Context, in FilterInput) (*RecordPage, error)

	UploadDataset(ctx context.Context, file domain.FileUpload) (*domain.UploadResponse, error)
	ListDatasets(ctx context.Context) ([]domain.Dataset, error)
	DeleteDataset(ctx context.Context, id int64) error

	SampleFile(ctx context.Context) (*domain.FileUpload, error)
}
