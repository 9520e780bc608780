package invoice

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"tools/internal/docmodel"
	"tools/internal/extract"
	"tools/internal/logger"
)

const (
	// MaxDocumentSizeBytes is the maximum document size for processing (20MB)
	MaxDocumentSizeBytes = 20 * 1024 * 1024

	// DefaultProcessorType is the default Document AI processor type for invoices
	DefaultProcessorType = "INVOICE_PROCESSOR"
)

// DocumentAIInvoiceProcessor implements InvoiceProcessor using Google Document AI.
type DocumentAIInvoiceProcessor struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
	log    zerolog.Logger
}

// NewDocumentAIInvoiceProcessor creates processor with credentials from environment.
// Expects: GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS
// Requires: GOOGLE_CLOUD_PROJECT_ID
// Optional: GOOGLE_CLOUD_LOCATION (e.g., "us" or "eu"; defaults to "us")
// Optional: DOCUMENT_AI_PROCESSOR_ID (or use default invoice processor)
func NewDocumentAIInvoiceProcessor(ctx context.Context) (InvoiceProcessor, error) {
	const op = "NewDocumentAIInvoiceProcessor"

	config := DocumentAIConfig{
		ProjectID:   getEnvVar("GOOGLE_CLOUD_PROJECT_ID", "GOOGLE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"),
		Location:    getEnvVar("GOOGLE_CLOUD_LOCATION", "GOOGLE_LOCATION"),
		ProcessorID: getEnvVar("DOCUMENT_AI_PROCESSOR_ID", "GOOGLE_PROCESSOR_ID"),
		Timeout:     60 * time.Second,
	}

	if config.ProjectID == "" {
		return nil, WrapInvoiceProcessingError(op, ErrInvalidConfiguration, "GOOGLE_CLOUD_PROJECT_ID is required")
	}
	if config.Location == "" {
		config.Location = "us"
	}

	var clientOptions []option.ClientOption

	if config.Location != "" && config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(clientOptions) == 0 {
			return nil, WrapInvoiceProcessingError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapInvoiceProcessingError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &DocumentAIInvoiceProcessor{
		client: client,
		config: config,
		log:    logger.WithComponent("document-ai"),
	}, nil
}

// NewDocumentAIInvoiceProcessorWithConfig creates processor with explicit config and client (for testing).
func NewDocumentAIInvoiceProcessorWithConfig(config DocumentAIConfig, client *documentai.DocumentProcessorClient) InvoiceProcessor {
	return &DocumentAIInvoiceProcessor{
		client: client,
		config: config,
		log:    logger.WithComponent("document-ai"),
	}
}

// ProcessDocument extracts structured line items from an invoice PDF.
func (p *DocumentAIInvoiceProcessor) ProcessDocument(ctx context.Context, pdfData io.Reader) (extract.Result, error) {
	const op = "ProcessDocument"

	pdfBytes, err := io.ReadAll(pdfData)
	if err != nil {
		return extract.Result{}, WrapInvoiceProcessingError(op, err, "failed to read PDF data")
	}

	if len(pdfBytes) > MaxDocumentSizeBytes {
		return extract.Result{}, WrapInvoiceProcessingError(op, ErrDocumentTooLarge, fmt.Sprintf("file size: %d bytes", len(pdfBytes)))
	}

	if len(pdfBytes) < 4 || string(pdfBytes[:4]) != "%PDF" {
		return extract.Result{}, WrapInvoiceProcessingError(op, ErrInvalidPDF, "missing PDF header")
	}

	processCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: p.getProcessorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
	}

	resp, err := p.client.ProcessDocument(processCtx, req)
	if err != nil {
		return extract.Result{}, p.handleProcessingError(op, err)
	}

	if resp.Document == nil {
		return extract.Result{}, WrapInvoiceProcessingError(op, ErrProcessingFailed, "no document in response")
	}

	result, err := extract.Run(toStructuredDocument(resp.Document))
	if err != nil {
		return extract.Result{}, WrapInvoiceProcessingError(op, err, "extraction pipeline failed")
	}

	p.log.Info().
		Str("vendor", string(result.Trace.Vendor)).
		Int("rows", len(result.Rows)).
		Float64("quality_score", result.Quality.Score).
		Msg("Document AI extraction completed")

	return result, nil
}

// toStructuredDocument converts a raw Document AI response into the
// vendor-agnostic docmodel.StructuredDocument the extraction pipeline
// consumes, replacing the single-entity field switch the teacher used to
// populate a models.Invoice directly.
func toStructuredDocument(doc *documentaipb.Document) docmodel.StructuredDocument {
	sd := docmodel.StructuredDocument{
		Text:     doc.Text,
		Entities: make([]docmodel.Entity, 0, len(doc.Entities)),
	}
	for i := range doc.Pages {
		sd.Pages = append(sd.Pages, docmodel.Page{Number: i + 1})
	}
	for _, e := range doc.Entities {
		sd.Entities = append(sd.Entities, toEntity(e))
	}
	return sd
}

func toEntity(e *documentaipb.Document_Entity) docmodel.Entity {
	entity := docmodel.Entity{
		Type:        e.Type,
		MentionText: strings.TrimSpace(e.MentionText),
		Confidence:  e.Confidence,
	}
	for _, pr := range e.PageAnchor.GetPageRefs() {
		entity.PageRefs = append(entity.PageRefs, docmodel.PageRef{Page: int(pr.Page)})
	}
	for _, prop := range e.Properties {
		entity.Properties = append(entity.Properties, toEntity(prop))
	}
	return entity
}

// getProcessorName constructs the full processor name for Document AI API.
func (p *DocumentAIInvoiceProcessor) getProcessorName() string {
	if p.config.ProcessorID != "" {
		if p.config.ProcessorVersion != "" {
			return fmt.Sprintf("projects/%s/locations/%s/processors/%s/processorVersions/%s",
				p.config.ProjectID, p.config.Location, p.config.ProcessorID, p.config.ProcessorVersion)
		}
		return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
			p.config.ProjectID, p.config.Location, p.config.ProcessorID)
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		p.config.ProjectID, p.config.Location, "default-invoice-processor")
}

// handleProcessingError converts Document AI errors to appropriate invoice processing errors.
func (p *DocumentAIInvoiceProcessor) handleProcessingError(op string, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return WrapInvoiceProcessingError(op, ErrInvalidCredentials, "insufficient permissions for Document AI")
	case strings.Contains(errStr, "QUOTA_EXCEEDED"):
		return WrapInvoiceProcessingError(op, ErrQuotaExceeded, "Document AI API quota exceeded")
	case strings.Contains(errStr, "NOT_FOUND"):
		return WrapInvoiceProcessingError(op, ErrProcessorNotFound, fmt.Sprintf("processor not found: %s", p.config.ProcessorID))
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return WrapInvoiceProcessingError(op, ErrInvalidPDF, "document format not supported or corrupted")
	case strings.Contains(errStr, "DeadlineExceeded") || strings.Contains(errStr, "context deadline exceeded"):
		return WrapInvoiceProcessingError(op, context.DeadlineExceeded, "processing timeout")
	case strings.Contains(errStr, "Canceled") || strings.Contains(errStr, "context canceled"):
		return WrapInvoiceProcessingError(op, ErrContextCanceled, "processing was canceled")
	default:
		return WrapInvoiceProcessingError(op, ErrProcessingFailed, fmt.Sprintf("Document AI error: %v", err))
	}
}

// getEnvVar tries multiple environment variable names and returns the first non-empty value
func getEnvVar(names ...string) string {
	for _, name := range names {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// Close closes the underlying Document AI client.
func (p *DocumentAIInvoiceProcessor) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}
