package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tools/internal/config"
	"tools/internal/docmodel"
	"tools/internal/extract"
	"tools/internal/invoice"
	"tools/internal/logger"
	"tools/internal/sheetsync"
	"tools/pkg/models"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice [pdf-file]",
	Short: "Extract normalized line items from an invoice PDF using Google Document AI",
	Long: `Process a PDF invoice using Google Document AI's specialized invoice parser,
then run the result through the vendor-aware extraction pipeline (Creative-Coop,
HarperCollins, OneHundred80, and a generic fallback) to produce normalized
(order_date, vendor, invoice_number, item_description, unit_price, quantity) rows.

The output is always in JSON format and includes the extraction trace (per-tier
usage counters, drop counts) and a quality score alongside the rows.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_CLOUD_PROJECT_ID - Your Google Cloud project ID
  GOOGLE_CLOUD_LOCATION - Processing location (us, eu, etc.)
  DOCUMENT_AI_PROCESSOR_ID - Your Document AI invoice processor ID`,
	Example: `  # Extract line items to stdout (JSON format)
  tools invoice invoice.pdf

  # Save extracted data to JSON file
  tools invoice invoice.pdf -o invoice-data.json

  # Process with custom timeout
  tools invoice large-invoice.pdf --timeout 120`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoice,
}

// ProcessingMetadata contains information about the processing operation
type ProcessingMetadata struct {
	FileName           string        `json:"file_name"`
	FileSize           int64         `json:"file_size_bytes"`
	ProcessedAt        time.Time     `json:"processed_at"`
	ProcessingDuration time.Duration `json:"processing_duration"`
	ProcessorUsed      string        `json:"processor_used"`
}

// InvoiceOutput is the JSON output structure for invoice processing: the
// pipeline's own result payload (spec section 9's rows/trace/quality
// first-class outputs), plus the CLI-level metadata about the run that
// produced it.
type InvoiceOutput struct {
	models.ExtractionResult
	Metadata ProcessingMetadata `json:"metadata"`
}

func init() {
	rootCmd.AddCommand(invoiceCmd)

	invoiceCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	invoiceCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
	invoiceCmd.Flags().Bool("append-to-sheet", false, "Append extracted rows to the configured Google Sheet")
}

func runInvoice(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoice")

	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	pdfPath := args[0]

	log.Info().
		Str("file", pdfPath).
		Str("output", outputPath).
		Int("timeout", timeoutSecs).
		Msg("Starting invoice processing")

	fileInfo, err := validateInvoicePDF(pdfPath, log)
	if err != nil {
		return err
	}

	ctx, cancel := createInvoiceContext(timeoutSecs, log)
	defer cancel()

	processor, err := createInvoiceProcessor(ctx, log)
	if err != nil {
		return err
	}

	pdfFile, err := os.Open(pdfPath)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", pdfPath).
			Msg("Failed to open PDF file")
		return fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer func() {
		if closeErr := pdfFile.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close PDF file")
		}
	}()

	log.Info().
		Str("file", pdfPath).
		Int64("size", fileInfo.Size()).
		Msg("Processing invoice PDF with Document AI")

	startTime := time.Now()
	result, err := processor.ProcessDocument(ctx, pdfFile)
	if err != nil {
		return handleInvoiceError(err, log)
	}
	processingDuration := time.Since(startTime)

	log.Info().
		Str("vendor", string(result.Trace.Vendor)).
		Int("rows", len(result.Rows)).
		Float64("quality_score", result.Quality.Score).
		Dur("duration", processingDuration).
		Msg("Invoice processing completed successfully")

	output := InvoiceOutput{
		ExtractionResult: models.ExtractionResult{
			Rows:        convertToModelRows(result.Rows),
			Trace:       convertToTraceSummary(result.Trace),
			Quality:     convertToQualitySummary(result.Quality),
			ProcessedAt: time.Now(),
		},
		Metadata: ProcessingMetadata{
			FileName:           filepath.Base(fileInfo.Name()),
			FileSize:           fileInfo.Size(),
			ProcessedAt:        time.Now(),
			ProcessingDuration: processingDuration,
			ProcessorUsed:      "Google Document AI Invoice Parser",
		},
	}

	if appendToSheet, _ := cmd.Flags().GetBool("append-to-sheet"); appendToSheet {
		if err := appendRowsToSheet(ctx, result.Rows, log); err != nil {
			log.Error().Err(err).Msg("Failed to append rows to Google Sheet")
			return fmt.Errorf("failed to append rows to Google Sheet: %w", err)
		}
	}

	return outputInvoiceResults(output, outputPath, log)
}

// validateInvoicePDF validates the PDF file for invoice processing
func validateInvoicePDF(pdfPath string, log zerolog.Logger) (os.FileInfo, error) {
	fileInfo, err := os.Stat(pdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().
				Str("file", pdfPath).
				Msg("Invoice PDF file not found")
			return nil, fmt.Errorf("invoice PDF file not found: %s", pdfPath)
		}
		if os.IsPermission(err) {
			log.Error().
				Str("file", pdfPath).
				Msg("Permission denied accessing PDF file")
			return nil, fmt.Errorf("permission denied accessing PDF file: %s", pdfPath)
		}
		return nil, fmt.Errorf("error accessing PDF file: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		log.Error().
			Str("file", pdfPath).
			Msg("Path is not a regular file")
		return nil, fmt.Errorf("path is not a regular file: %s", pdfPath)
	}

	if !strings.HasSuffix(strings.ToLower(pdfPath), ".pdf") {
		log.Warn().
			Str("file", pdfPath).
			Msg("File does not have .pdf extension")
	}

	if fileInfo.Size() == 0 {
		log.Error().
			Str("file", pdfPath).
			Msg("PDF file is empty")
		return nil, fmt.Errorf("PDF file is empty: %s", pdfPath)
	}

	if fileInfo.Size() > invoice.MaxDocumentSizeBytes {
		log.Error().
			Str("file", pdfPath).
			Int64("size", fileInfo.Size()).
			Int64("max_size", invoice.MaxDocumentSizeBytes).
			Msg("PDF file exceeds maximum size limit")
		return nil, fmt.Errorf("PDF file too large (%d bytes). Maximum size is %d bytes (20MB)",
			fileInfo.Size(), invoice.MaxDocumentSizeBytes)
	}

	return fileInfo, nil
}

// createInvoiceContext creates a context with timeout and signal handling
func createInvoiceContext(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling invoice processing")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// createInvoiceProcessor creates and configures the invoice processor
func createInvoiceProcessor(ctx context.Context, log zerolog.Logger) (invoice.InvoiceProcessor, error) {
	processor, err := invoice.NewDocumentAIInvoiceProcessor(ctx)
	if err != nil {
		if errors.Is(err, invoice.ErrMissingCredentials) {
			log.Error().
				Err(err).
				Msg("Google Cloud credentials not configured")
			return nil, fmt.Errorf("missing Google Cloud credentials. Please set one of:\n"+
				"  GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n"+
				"  GOOGLE_CREDENTIALS='<json-credentials>'\n"+
				"Also ensure these are set:\n"+
				"  GOOGLE_CLOUD_PROJECT_ID=your-project-id\n"+
				"  GOOGLE_CLOUD_LOCATION=us (or eu)\n"+
				"  DOCUMENT_AI_PROCESSOR_ID=your-processor-id\n"+
				"Original error: %w", err)
		}
		if errors.Is(err, invoice.ErrInvalidConfiguration) {
			log.Error().
				Err(err).
				Msg("Document AI configuration invalid")
			return nil, fmt.Errorf("invalid Document AI configuration. Please check your .env file:\n"+
				"  GOOGLE_CLOUD_PROJECT_ID - your Google Cloud project ID\n"+
				"  GOOGLE_CLOUD_LOCATION - processing location (us, eu, etc.)\n"+
				"  DOCUMENT_AI_PROCESSOR_ID - your Document AI processor ID\n"+
				"Original error: %w", err)
		}
		log.Error().
			Err(err).
			Msg("Failed to create invoice processor")
		return nil, fmt.Errorf("failed to create invoice processor: %w", err)
	}

	log.Debug().Msg("Invoice processor created successfully")
	return processor, nil
}

// handleInvoiceError provides user-friendly error messages for invoice processing failures
func handleInvoiceError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice processing failed")

	errStr := err.Error()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("invoice processing timed out. Try increasing --timeout or processing a smaller file")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("invoice processing was canceled")
	case errors.Is(err, invoice.ErrInvalidPDF):
		return fmt.Errorf("invalid or corrupted PDF file. Please check the file integrity")
	case errors.Is(err, invoice.ErrDocumentTooLarge):
		return fmt.Errorf("PDF file is too large (maximum 20MB). Try compressing or splitting the file")
	case errors.Is(err, invoice.ErrProcessorNotFound):
		return fmt.Errorf("Document AI processor not found. Please check your DOCUMENT_AI_PROCESSOR_ID environment variable")
	case strings.Contains(errStr, "Unauthenticated") ||
		strings.Contains(errStr, "invalid_grant") ||
		strings.Contains(errStr, "auth:") ||
		strings.Contains(errStr, "credentials"):
		return fmt.Errorf("Google Cloud authentication failed. Please check your credentials:\n\n"+
			"1. Set GOOGLE_APPLICATION_CREDENTIALS to your service account JSON file path\n"+
			"2. Or set GOOGLE_CREDENTIALS with inline JSON credentials\n"+
			"3. Ensure the service account has 'Document AI API User' role\n\n"+
			"Original error: %v", err)
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return fmt.Errorf("permission denied. Please ensure your service account has 'Document AI API User' role")
	case strings.Contains(errStr, "QUOTA_EXCEEDED"):
		return fmt.Errorf("Document AI API quota exceeded. Check your project quotas in Google Cloud Console")
	case errors.Is(err, invoice.ErrProcessingFailed):
		return fmt.Errorf("Document AI processing failed. This may be due to network issues or service unavailability: %w", err)
	default:
		return fmt.Errorf("invoice processing failed: %w", err)
	}
}

// appendRowsToSheet loads the Google Sheets configuration and appends the
// extracted rows, mirroring the teacher's opt-in sheet-writing step for its
// DATEV batch command.
func appendRowsToSheet(ctx context.Context, rows []docmodel.Row, log zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading sheet configuration: %w", err)
	}

	svc, err := sheetsync.NewService(ctx, cfg.GoogleSheetsSpreadsheetID)
	if err != nil {
		return fmt.Errorf("connecting to Google Sheets: %w", err)
	}

	if err := svc.AppendRows(ctx, cfg.GoogleSheetsSheetName, rows); err != nil {
		return err
	}

	log.Info().
		Str("sheet", cfg.GoogleSheetsSheetName).
		Int("rows", len(rows)).
		Msg("Appended extracted rows to Google Sheet")
	return nil
}

func convertToModelRows(rows []docmodel.Row) []models.Row {
	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Row{
			OrderDate:       r.OrderDate,
			Vendor:          r.Vendor,
			InvoiceNumber:   r.InvoiceNumber,
			ItemDescription: r.ItemDescription,
			UnitPrice:       r.UnitPrice,
			Quantity:        r.Quantity,
		})
	}
	return out
}

func convertToTraceSummary(t *docmodel.Trace) models.TraceSummary {
	if t == nil {
		return models.TraceSummary{
			PriceTierUsage: map[string]int{},
			QtyTierUsage:   map[string]int{},
			DropCounts:     map[string]int{},
		}
	}
	s := models.TraceSummary{
		Vendor:              string(t.Vendor),
		PriceTierUsage:      make(map[string]int, len(t.PriceTierUsage)),
		QtyTierUsage:        make(map[string]int, len(t.QtyTierUsage)),
		DropCounts:          make(map[string]int, len(t.DropCounts)),
		EntitiesSkipped:     t.EntitiesSkipped,
		ContinuationsMerged: t.ContinuationsMerged,
	}
	for k, v := range t.PriceTierUsage {
		s.PriceTierUsage[string(k)] = v
	}
	for k, v := range t.QtyTierUsage {
		s.QtyTierUsage[string(k)] = v
	}
	for k, v := range t.DropCounts {
		s.DropCounts[string(k)] = v
	}
	return s
}

func convertToQualitySummary(q extract.QualityScore) models.QualitySummary {
	hist := make(map[string]int, len(q.TierUsageHistogram))
	for k, v := range q.TierUsageHistogram {
		hist[string(k)] = v
	}
	return models.QualitySummary{
		UniqueProducts:      q.UniqueProducts,
		PriceDiversity:      q.PriceDiversity,
		QuantityDiversity:   q.QuantityDiversity,
		PlaceholderRows:     q.PlaceholderRows,
		CompleteRecordRatio: q.CompleteRecordRatio,
		TierUsageHistogram:  hist,
		Score:               q.Score,
	}
}

// outputInvoiceResults formats and outputs the invoice processing results as JSON
func outputInvoiceResults(output InvoiceOutput, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal invoice data to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		err = os.WriteFile(outputPath, jsonData, 0644)
		if err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Invoice data written to file")
	} else {
		_, err = os.Stdout.Write(jsonData)
		if err != nil {
			log.Error().Err(err).Msg("Failed to write to stdout")
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Println()
	}

	return nil
}
