package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/finrating/dashboard-client/internal/core/domain"
	"github.com/finrating/dashboard-client/internal/core/ports"
)

const (
	msgInvalidFileType = "Invalid file type. Please upload CSV or Excel files only."
	msgFileTooLarge    = "File is too large. Maximum size is 50MB."
	msgUploadSucceeded = "Upload successful! Processing your data..."
	msgSampleLoaded    = "Sample data loaded successfully!"
	msgSampleMissing   = "Sample file not found."
)

// UploadService drives the file-upload state machine:
// Idle → Validating → Selected → Uploading → Succeeded|Failed.
// Validation failures resolve entirely client-side; a successful upload
// schedules a dashboard refresh. There are no automatic retries.
type UploadService struct {
	client  ports.APIClient
	refresh ports.RefreshScheduler
	log     zerolog.Logger

	mu      sync.Mutex
	state   domain.UploadState
	file    *domain.FileUpload
	message string
	failed  bool
}

func NewUploadService(client ports.APIClient, refresh ports.RefreshScheduler, log zerolog.Logger) *UploadService {
	return &UploadService{
		client:  client,
		refresh: refresh,
		log:     log,
		state:   domain.UploadIdle,
	}
}

// SelectFile validates and stages a file. The type check runs first and
// short-circuits the size check; the first violated rule is the one
// reported. On failure no file is retained and the state returns to Idle.
func (s *UploadService) SelectFile(file domain.FileUpload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked(domain.UploadValidating); err != nil {
		return err
	}

	if !file.AcceptableFileType() {
		s.rejectLocked(msgInvalidFileType)
		return &domain.ValidationError{Message: msgInvalidFileType}
	}
	if file.Size > domain.MaxUploadSize {
		s.rejectLocked(msgFileTooLarge)
		return &domain.ValidationError{Message: msgFileTooLarge}
	}

	s.state = domain.UploadSelected
	s.file = &file
	s.message = ""
	s.failed = false
	s.log.Debug().Str("file", file.Name).Int64("size", file.Size).Msg("file selected")
	return nil
}

// Upload sends the staged file with the transport's upload time budget.
// Succeeds or fails exactly once; either way the staged file is cleared and
// a retry requires selecting again.
func (s *UploadService) Upload(ctx context.Context) error {
	s.mu.Lock()
	if s.state != domain.UploadSelected || s.file == nil {
		s.mu.Unlock()
		return domain.ErrNoFileSelected
	}
	file := *s.file
	s.state = domain.UploadUploading
	s.mu.Unlock()

	resp, err := s.client.UploadDataset(ctx, file)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = nil
	if err != nil {
		s.state = domain.UploadFailed
		s.message = domain.UserMessage(err)
		s.failed = true
		s.log.Warn().Err(err).Str("file", file.Name).Msg("upload failed")
		return err
	}

	s.state = domain.UploadSucceeded
	s.failed = false
	if resp.Message != "" {
		s.message = resp.Message
	} else {
		s.message = msgUploadSucceeded
	}
	s.log.Info().Str("file", file.Name).Int64("dataset_id", resp.ID).Msg("upload accepted")
	s.refresh.Schedule()
	return nil
}

// LoadSample fetches the bundled sample dataset and pushes it through the
// normal select/upload path, so sample and user uploads share one set of
// invariants.
func (s *UploadService) LoadSample(ctx context.Context) error {
	file, err := s.client.SampleFile(ctx)
	if err != nil {
		s.mu.Lock()
		s.message = msgSampleMissing
		s.failed = true
		s.mu.Unlock()
		return fmt.Errorf("load sample: %w", err)
	}

	if err := s.SelectFile(*file); err != nil {
		return err
	}
	if err := s.Upload(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.message = msgSampleLoaded
	s.mu.Unlock()
	return nil
}

// Acknowledge clears a terminal outcome and returns the machine to Idle.
func (s *UploadService) Acknowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.UploadSucceeded || s.state == domain.UploadFailed {
		s.state = domain.UploadIdle
		s.message = ""
		s.failed = false
	}
}

// State returns the current machine state.
func (s *UploadService) State() domain.UploadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Message returns the last outcome message and whether it was a failure.
func (s *UploadService) Message() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message, s.failed
}

// SelectedFile returns the name of the staged file, or "" when none is held.
func (s *UploadService) SelectedFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return ""
	}
	return s.file.Name
}

func (s *UploadService) transitionLocked(next domain.UploadState) error {
	if !s.state.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, s.state, next)
	}
	s.state = next
	return nil
}

func (s *UploadService) rejectLocked(message string) {
	s.state = domain.UploadIdle
	s.file = nil
	s.message = message
	s.failed = true
}
