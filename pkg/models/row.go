package models

import "time"

// Row is the public JSON shape of one assembled line item, mirroring
// docmodel.Row (the package boundary keeps pkg/models free of an
// internal/ import).
type Row struct {
	OrderDate       string `json:"order_date"`
	Vendor          string `json:"vendor"`
	InvoiceNumber   string `json:"invoice_number"`
	ItemDescription string `json:"item_description"`
	UnitPrice       string `json:"unit_price"`
	Quantity        string `json:"quantity"`
}

// TraceSummary is the public JSON shape of the extraction trace:
// observability counters, never control flow.
type TraceSummary struct {
	Vendor              string         `json:"vendor"`
	PriceTierUsage      map[string]int `json:"price_tier_usage"`
	QtyTierUsage        map[string]int `json:"qty_tier_usage"`
	DropCounts          map[string]int `json:"drop_counts"`
	EntitiesSkipped     int            `json:"entities_skipped"`
	ContinuationsMerged int            `json:"continuations_merged"`
}

// QualitySummary is the public JSON shape of the per-document quality
// score (spec section 4.5.8).
type QualitySummary struct {
	UniqueProducts      int            `json:"unique_products"`
	PriceDiversity      float64        `json:"price_diversity"`
	QuantityDiversity   float64        `json:"quantity_diversity"`
	PlaceholderRows     int            `json:"placeholder_rows"`
	CompleteRecordRatio float64        `json:"complete_record_ratio"`
	TierUsageHistogram  map[string]int `json:"tier_usage_histogram"`
	Score               float64        `json:"score"`
}

// ExtractionResult is the full payload returned by the extraction
// pipeline: the assembled rows plus the trace and quality score as
// first-class outputs (spec section 9), not log lines.
type ExtractionResult struct {
	Rows       []Row          `json:"rows"`
	Trace      TraceSummary   `json:"trace"`
	Quality    QualitySummary `json:"quality"`
	ProcessedAt time.Time     `json:"processed_at"`
}
