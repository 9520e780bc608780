// Package invoice provides invoice processing capabilities using Google Document AI.
//
// This package supports processing PDF invoices and extracting structured
// line items using Google Cloud Document AI's specialized invoice parser
// processor, then handing the resulting structured document to the
// vendor-aware extraction pipeline in internal/extract.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//   - GOOGLE_CLOUD_PROJECT_ID: Google Cloud project ID
//   - GOOGLE_CLOUD_LOCATION: Processing location (e.g., "us", "eu")
//   - DOCUMENT_AI_PROCESSOR_ID: Document AI processor ID (optional, uses default invoice processor)
//
// Document AI API Limitations:
//   - Maximum file size: 20MB for synchronous processing
//   - Supported formats: PDF, TIFF, GIF, JPEG, PNG, BMP, WEBP
//   - Processing time: Typically 5-15 seconds per invoice
//   - Quota limits apply (check Google Cloud Console)
package invoice

import (
	"context"
	"io"
	"time"

	"tools/internal/extract"
)

// InvoiceProcessor defines the interface for invoice processing services.
type InvoiceProcessor interface {
	// ProcessDocument extracts structured line items from an invoice PDF,
	// returning the assembled rows plus the observability trace and
	// quality score produced by the extraction pipeline.
	ProcessDocument(ctx context.Context, pdfData io.Reader) (extract.Result, error)
}

// DocumentAIConfig holds configuration for Google Document AI processing.
type DocumentAIConfig struct {
	// ProjectID is the Google Cloud project ID where Document AI is enabled.
	ProjectID string

	// Location is the processing location (e.g., "us", "eu").
	// Should match where your Document AI processor is created.
	Location string

	// ProcessorID is the Document AI processor ID.
	// If empty, will attempt to find a default invoice processor.
	ProcessorID string

	// Timeout is the maximum time to wait for processing.
	// Default: 60 seconds.
	Timeout time.Duration

	// ProcessorVersion specifies a particular processor version.
	// If empty, uses the default version.
	ProcessorVersion string
}

// DefaultConfig returns a DocumentAIConfig with sensible defaults.
func DefaultConfig() DocumentAIConfig {
	return DocumentAIConfig{
		Location: "us",
		Timeout:  60 * time.Second,
	}
}

// InvoiceProcessingResult wraps a pipeline Result with processing timing,
// for callers (CLI, tests) that want both together.
type InvoiceProcessingResult struct {
	// Result is the extracted rows, trace, and quality score.
	Result extract.Result

	// ProcessingTime is how long the Document AI call plus extraction took.
	ProcessingTime time.Duration

	// ProcessedAt is when the processing completed.
	ProcessedAt time.Time
}