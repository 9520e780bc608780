package invoice_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"tools/internal/invoice"
)

// Example demonstrates basic usage of the invoice processor.
func Example() {
	// Load .env file (using godotenv in main)
	// This should be done in your main() function:
	//
	// if err := godotenv.Load(); err != nil {
	//     log.Printf("Warning: Could not load .env file: %v", err)
	// }

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Create invoice processor - credentials handled internally from environment
	processor, err := invoice.NewDocumentAIInvoiceProcessor(ctx)
	if err != nil {
		log.Fatal(err)
	}

	pdfFile, err := os.Open("sample_invoice.pdf")
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer pdfFile.Close()

	result, err := processor.ProcessDocument(ctx, pdfFile)
	if err != nil {
		log.Fatalf("Failed to process invoice: %v", err)
	}

	fmt.Printf("Vendor: %s, rows: %d, quality: %.2f\n",
		result.Trace.Vendor, len(result.Rows), result.Quality.Score)
}

// ExampleErrorHandling demonstrates proper error handling patterns.
func ExampleErrorHandling() {
	ctx := context.Background()

	processor, err := invoice.NewDocumentAIInvoiceProcessor(ctx)
	if err != nil {
		if errors.Is(err, invoice.ErrMissingCredentials) {
			log.Fatalf("Please set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS")
		}
		if errors.Is(err, invoice.ErrInvalidConfiguration) {
			log.Fatalf("Please set GOOGLE_CLOUD_PROJECT_ID environment variable")
		}
		log.Fatalf("Failed to create processor: %v", err)
	}

	pdfFile, err := os.Open("invoice.pdf")
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer pdfFile.Close()

	result, err := processor.ProcessDocument(ctx, pdfFile)
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrInvalidPDF):
			log.Printf("The file is not a valid PDF document.")
			return
		case errors.Is(err, invoice.ErrDocumentTooLarge):
			log.Printf("PDF is too large for processing. Maximum size is 20MB.")
			return
		case errors.Is(err, invoice.ErrProcessorNotFound):
			log.Printf("Document AI processor not found. Check your DOCUMENT_AI_PROCESSOR_ID.")
			return
		case errors.Is(err, invoice.ErrQuotaExceeded):
			log.Printf("Document AI quota exceeded. Check your project quotas.")
			return
		default:
			log.Fatalf("Invoice processing failed: %v", err)
		}
	}

	fmt.Printf("Successfully processed invoice: %d rows\n", len(result.Rows))
}

// ExampleCustomConfiguration demonstrates using custom configuration.
func ExampleCustomConfiguration() {
	config := invoice.DocumentAIConfig{
		ProjectID:   "your-project-id",
		Location:    "eu",
		ProcessorID: "your-processor-id",
		Timeout:     90 * time.Second,
	}

	// Note: In practice, you would create a client and pass it:
	// client, err := documentai.NewDocumentProcessorClient(ctx, ...)
	// processor := invoice.NewDocumentAIInvoiceProcessorWithConfig(config, client)

	fmt.Printf("Custom config: Project=%s, Location=%s\n", config.ProjectID, config.Location)
}

// ExampleBatchProcessing demonstrates processing multiple invoice files.
func ExampleBatchProcessing() {
	ctx := context.Background()

	processor, err := invoice.NewDocumentAIInvoiceProcessor(ctx)
	if err != nil {
		log.Fatal(err)
	}

	invoiceFiles := []string{"invoice1.pdf", "invoice2.pdf", "invoice3.pdf"}

	for _, filename := range invoiceFiles {
		func(filename string) {
			file, err := os.Open(filename)
			if err != nil {
				log.Printf("Failed to open %s: %v", filename, err)
				return
			}
			defer file.Close()

			fileCtx, cancel := context.WithTimeout(ctx, 90*time.Second)
			defer cancel()

			result, err := processor.ProcessDocument(fileCtx, file)
			if err != nil {
				log.Printf("Failed to process %s: %v", filename, err)
				return
			}

			fmt.Printf("%s: vendor=%s rows=%d quality=%.2f\n",
				filename, result.Trace.Vendor, len(result.Rows), result.Quality.Score)
		}(filename)
	}
}

// ExampleRowUsage demonstrates working with the assembled rows.
func ExampleRowUsage() {
	ctx := context.Background()

	processor, err := invoice.NewDocumentAIInvoiceProcessor(ctx)
	if err != nil {
		log.Fatal(err)
	}

	pdfFile, err := os.Open("sample_invoice.pdf")
	if err != nil {
		log.Fatal(err)
	}
	defer pdfFile.Close()

	result, err := processor.ProcessDocument(ctx, pdfFile)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Processing invoice from vendor %s\n", result.Trace.Vendor)

	for _, row := range result.Rows {
		fmt.Printf("  %s x%s @ %s: %s\n", row.Quantity, row.ItemDescription, row.UnitPrice, row.InvoiceNumber)
	}

	if result.Quality.PlaceholderRows > 0 {
		fmt.Printf("WARNING: %d placeholder rows detected\n", result.Quality.PlaceholderRows)
	}
}
