package domain

import (
	"io"
	"path"
	"strings"
)

// DatasetStatus is the server-driven lifecycle state of an uploaded dataset.
// Transitions are observed only through re-fetching the collection.
type DatasetStatus string

const (
	DatasetPending    DatasetStatus = "PENDING"
	DatasetProcessing DatasetStatus = "PROCESSING"
	DatasetCompleted  DatasetStatus = "COMPLETED"
	DatasetFailed     DatasetStatus = "FAILED"
)

// MaxUploadSize is enforced client-side before any network call.
const MaxUploadSize = 50 * 1024 * 1024

// Dataset describes one uploaded file and its processing outcome.
type Dataset struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	FileName    string        `json:"fileName"`
	FileType    string        `json:"fileType"`
	FileSize    int64         `json:"fileSize"`
	Status      DatasetStatus `json:"status"`
	RecordCount *int64        `json:"recordCount,omitempty"`
	UploadedAt  WireTime      `json:"uploadedAt"`
	ProcessedAt *WireTime     `json:"processedAt,omitempty"`
}

// UploadResponse is the API acknowledgement for a dataset upload.
type UploadResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// FileUpload is a file staged for upload. Content is read exactly once when
// the upload request body is built.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

var allowedContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

var allowedExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// AcceptableFileType reports whether the file looks like a CSV or Excel
// spreadsheet, by declared MIME type or by file extension.
func (f FileUpload) AcceptableFileType() bool {
	if allowedContentTypes[strings.ToLower(f.ContentType)] {
		return true
	}
	return allowedExtensions[strings.ToLower(path.Ext(f.Name))]
}
