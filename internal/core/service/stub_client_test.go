package service

import (
	"context"
	"sync/atomic"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
)

// stubClient implements ports.APIClient with overridable behaviour per
// method and call counters for asserting that no network call was issued.
type stubClient struct {
	loginFn    func(ctx context.Context, in ports.AuthInput) (*domain.Session, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Session, error)
	summaryFn  func(ctx context.Context) (*domain.DashboardSummary, error)
	recordsFn  func(ctx context.Context, page, size int) (*ports.RecordPage, error)
	filterFn   func(ctx context.Context, in ports.FilterInput) (*ports.RecordPage, error)
	uploadFn   func(ctx context.Context, file domain.FileUpload) (*domain.UploadResponse, error)
	listFn     func(ctx context.Context) ([]domain.Dataset, error)
	deleteFn   func(ctx context.Context, id int64) error
	sampleFn   func(ctx context.Context) (*domain.FileUpload, error)

	loginCalls   atomic.Int32
	uploadCalls  atomic.Int32
	recordsCalls atomic.Int32
	filterCalls  atomic.Int32
}

func (c *stubClient) Login(ctx context.Context, in ports.AuthInput) (*domain.Session, error) {
	c.loginCalls.Add(1)
	if c.loginFn == nil {
		return &domain.Session{Token: "stub-token", Email: in.Email, Role: domain.RoleUser}, nil
	}
	return c.loginFn(ctx, in)
}

func (c *stubClient) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	if c.registerFn == nil {
		return &domain.Session{Token: "stub-token", Email: in.Email, Role: domain.RoleUser}, nil
	}
	return c.registerFn(ctx, in)
}

func (c *stubClient) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	if c.summaryFn == nil {
		return &domain.DashboardSummary{}, nil
	}
	return c.summaryFn(ctx)
}

func (c *stubClient) Records(ctx context.Context, page, size int) (*ports.RecordPage, error) {
	c.recordsCalls.Add(1)
	if c.recordsFn == nil {
		return &ports.RecordPage{}, nil
	}
	return c.recordsFn(ctx, page, size)
}

func (c *stubClient) Filter(ctx context.Context, in ports.FilterInput) (*ports.RecordPage, error) {
	c.filterCalls.Add(1)
	if c.filterFn == nil {
		return &ports.RecordPage{}, nil
	}
	return c.filterFn(ctx, in)
}

func (c *stubClient) UploadDataset(ctx context.Context, file domain.FileUpload) (*domain.UploadResponse, error) {
	c.uploadCalls.Add(1)
	if c.uploadFn == nil {
		return &domain.UploadResponse{ID: 1, Status: "PENDING"}, nil
	}
	return c.uploadFn(ctx, file)
}

func (c *stubClient) ListDatasets(ctx context.Context) ([]domain.Dataset, error) {
	if c.listFn == nil {
		return nil, nil
	}
	return c.listFn(ctx)
}

func (c *stubClient) DeleteDataset(ctx context.Context, id int64) error {
	if c.deleteFn == nil {
		return nil
	}
	return c.deleteFn(ctx, id)
}

func (c *stubClient) SampleFile(ctx context.Context) (*domain.FileUpload, error) {
	if c.sampleFn == nil {
		return nil, domain.ErrNetworkUnavailable
	}
	return c.sampleFn(ctx)
}

// stubTokenStore is an in-memory ports.TokenStore.
type stubTokenStore struct {
	token string
}

func (s *stubTokenStore) Token() string          { return s.token }
func (s *stubTokenStore) Set(token string) error { s.token = token; return nil }
func (s *stubTokenStore) Clear() error           { s.token = ""; return nil }

// stubScheduler records refresh scheduling.
type stubScheduler struct {
	calls atomic.Int32
}

func (s *stubScheduler) Schedule() { s.calls.Add(1) }
