// Package transport is the single choke point for outbound calls to the
// rating API. It attaches the session token and per-call time budgets, and
// normalizes every failure into the domain error taxonomy so callers see
// exactly one terminal outcome per request.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
	"github.com/finrating/dashboard-client/internal/infrastructure/metrics"
)

const samplePath = "/assets/sample-ratings.csv"

// Options configures the transport client.
type Options struct {
	BaseURL string
	// RequestTimeout bounds ordinary reads and writes.
	RequestTimeout time.Duration
	// UploadTimeout is the dedicated budget for dataset uploads.
	UploadTimeout time.Duration
}

// Client implements ports.APIClient over HTTP.
type Client struct {
	baseURL        string
	http           *http.Client
	requestTimeout time.Duration
	uploadTimeout  time.Duration
	tokens         ports.TokenSource
	log            zerolog.Logger
}

var _ ports.APIClient = (*Client)(nil)

func New(opts Options, tokens ports.TokenSource, log zerolog.Logger) *Client {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = 60 * time.Second
	}
	if tokens == nil {
		tokens = func() string { return "" }
	}
	return &Client{
		baseURL:        opts.BaseURL,
		http:           &http.Client{},
		requestTimeout: opts.RequestTimeout,
		uploadTimeout:  opts.UploadTimeout,
		tokens:         tokens,
		log:            log,
	}
}

func (c *Client) Login(ctx context.Context, in ports.AuthInput) (*domain.Session, error) {
	var session domain.Session
	if err := c.postJSON(ctx, "login", "/api/auth/login", in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	var session domain.Session
	if err := c.postJSON(ctx, "register", "/api/auth/register", in, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if err := c.getJSON(ctx, "summary", "/api/dashboard/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) Records(ctx context.Context, page, size int) (*ports.RecordPage, error) {
	path := "/api/dashboard/records?page=" + strconv.Itoa(page) + "&size=" + strconv.Itoa(size)
	var result ports.RecordPage
	if err := c.getJSON(ctx, "records", path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Filter(ctx context.Context, in ports.FilterInput) (*ports.RecordPage, error) {
	var result ports.RecordPage
	if err := c.postJSON(ctx, "filter", "/api/dashboard/filter", in, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UploadDataset submits the file as multipart form field "file", bound by
// the upload time budget.
func (c *Client) UploadDataset(ctx context.Context, file domain.FileUpload) (*domain.UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, &domain.ClientError{Message: "failed to build upload request: " + err.Error()}
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, &domain.ClientError{Message: "failed to read selected file: " + err.Error()}
	}
	if err := writer.Close(); err != nil {
		return nil, &domain.ClientError{Message: "failed to build upload request: " + err.Error()}
	}

	metrics.UploadBytesTotal.Add(float64(buf.Len()))

	var resp domain.UploadResponse
	err = c.send(ctx, request{
		endpoint:    "upload",
		method:      http.MethodPost,
		path:        "/api/datasets/upload",
		body:        &buf,
		contentType: writer.FormDataContentType(),
		timeout:     c.uploadTimeout,
		out:         &resp,
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListDatasets(ctx context.Context) ([]domain.Dataset, error) {
	var datasets []domain.Dataset
	if err := c.getJSON(ctx, "datasets", "/api/datasets", &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (c *Client) DeleteDataset(ctx context.Context, id int64) error {
	return c.send(ctx, request{
		endpoint: "delete_dataset",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/datasets/%d", id),
		timeout:  c.requestTimeout,
	})
}

// SampleFile fetches the bundled sample dataset and wraps it as a staged
// file so it can travel the normal upload path.
func (c *Client) SampleFile(ctx context.Context) (*domain.FileUpload, error) {
	var raw []byte
	err := c.send(ctx, request{
		endpoint: "sample",
		method:   http.MethodGet,
		path:     samplePath,
		timeout:  c.requestTimeout,
		raw:      &raw,
	})
	if err != nil {
		return nil, err
	}
	return &domain.FileUpload{
		Name:        "sample-ratings.csv",
		ContentType: "text/csv",
		Size:        int64(len(raw)),
		Content:     bytes.NewReader(raw),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) error {
	return c.send(ctx, request{
		endpoint: endpoint,
		method:   http.MethodGet,
		path:     path,
		timeout:  c.requestTimeout,
		out:      out,
	})
}

func (c *Client) postJSON(ctx context.Context, endpoint, path string, body, out any) error {
	encoded, err := gojson.Marshal(body)
	if err != nil {
		return &domain.ClientError{Message: "failed to encode request: " + err.Error()}
	}
	return c.send(ctx, request{
		endpoint:    endpoint,
		method:      http.MethodPost,
		path:        path,
		body:        bytes.NewReader(encoded),
		contentType: "application/json",
		timeout:     c.requestTimeout,
		out:         out,
	})
}

type request struct {
	endpoint    string
	method      string
	path        string
	body        io.Reader
	contentType string
	timeout     time.Duration
	// out, when set, receives the JSON-decoded response body.
	out any
	// raw, when set, receives the response body verbatim.
	raw *[]byte
}

func (c *Client) send(ctx context.Context, r request) (err error) {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(r.endpoint).Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(r.endpoint, outcomeLabel(err)).Inc()
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return &domain.ClientError{Message: "failed to build request: " + err.Error()}
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		err = classifyTransportFailure(err)
		c.log.Warn().Err(err).Str("endpoint", r.endpoint).Msg("request failed before a response arrived")
		return err
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		err = classifyTransportFailure(readErr)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = classifyStatus(resp.StatusCode, body)
		c.log.Warn().Err(err).Str("endpoint", r.endpoint).Int("status", resp.StatusCode).Msg("request rejected")
		return err
	}

	if r.raw != nil {
		*r.raw = body
		return nil
	}
	if r.out != nil && len(body) > 0 {
		if decodeErr := gojson.Unmarshal(body, r.out); decodeErr != nil {
			err = &domain.ClientError{Message: "failed to decode response: " + decodeErr.Error()}
			return err
		}
	}
	return nil
}
