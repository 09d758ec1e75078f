package models

import (
	"path/filepath"
	"strings"
	"time"
)

type ResourceType string

const (
	ResourcePDF   ResourceType = "PDF"
	ResourceDOC   ResourceType = "DOC"
	ResourceTXT   ResourceType = "TXT"
	ResourceOther ResourceType = "OTHER"
)

// ResourceTypeOf guesses the backend resource type from a file name.
func ResourceTypeOf(fileName string) ResourceType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return ResourcePDF
	case ".doc", ".docx":
		return ResourceDOC
	case ".txt", ".md":
		return ResourceTXT
	default:
		return ResourceOther
	}
}

type Resource struct {
	ID               int64        `json:"id"`
	Project          int64        `json:"project"`
	Title            string       `json:"title"`
	File             string       `json:"file"`
	FileType         ResourceType `json:"file_type"`
	Description      string       `json:"description"`
	FileSize         int64        `json:"file_size"`
	UploadedAt       time.Time    `json:"uploaded_at"`
	ContentExtracted *string      `json:"content_extracted"`
	ExtractionError  *string      `json:"extraction_error"`
	LastExtracted    *time.Time   `json:"last_extracted"`
	Summary          *string      `json:"summary"`
	SummaryError     *string      `json:"summary_error"`
	LastSummarized   *time.Time   `json:"last_summarized"`
}

// CitationTitle is the resource title without its document extension,
// used to name notes derived from the resource.
func (r Resource) CitationTitle() string {
	title := r.Title
	for _, ext := range []string{".pdf", ".docx", ".doc"} {
		if strings.HasSuffix(strings.ToLower(title), ext) {
			title = title[:len(title)-len(ext)]
			break
		}
	}
	return strings.TrimSpace(title)
}

// ResourceSummary is the reply of the summarize endpoint.
type ResourceSummary struct {
	Summary        string     `json:"summary"`
	SummaryError   string     `json:"summary_error,omitempty"`
	LastSummarized *time.Time `json:"last_summarized,omitempty"`
}

// NewResource describes an upload. The file body travels separately as a
// multipart part.
type NewResource struct {
	Project     int64
	Title       string
	FileName    string
	Description string
}

func (r NewResource) Validate() error {
	errs := FieldErrors{}
	if r.Project <= 0 {
		errs["project"] = "Project is required"
	}
	if r.FileName == "" {
		errs["file"] = "File is required"
	}
	return errs.err()
}
