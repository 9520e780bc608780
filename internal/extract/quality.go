package extract

import "tools/internal/docmodel"

// QualityScore is the per-invoice observability summary of spec section
// 4.5.8, computed unconditionally for every vendor path (not only
// Creative-Coop) so monitoring has parity across extractors: every
// vendor's rows are counted the same way, including the "$1.60"/"24"
// placeholder check.
type QualityScore struct {
	UniqueProducts     int
	PriceDiversity     float64 // unique prices / rows
	QuantityDiversity  float64 // unique quantities / rows
	PlaceholderRows     int
	CompleteRecordRatio float64 // complete_records / rows
	TierUsageHistogram  map[docmodel.TierKind]int
	Score               float64
}

// ComputeQuality derives a QualityScore from the assembled rows and the
// trace accumulated during extraction. The weighting combines product
// coverage (target >= 100), placeholder absence, price diversity > 0.5,
// quantity diversity > 0.3, and description completeness > 0.95; it never
// gates emission, only informs monitoring.
func ComputeQuality(rows []docmodel.Row, trace *docmodel.Trace) QualityScore {
	q := QualityScore{TierUsageHistogram: make(map[docmodel.TierKind]int)}
	if trace != nil {
		for k, v := range trace.PriceTierUsage {
			q.TierUsageHistogram[k] += v
		}
		for k, v := range trace.QtyTierUsage {
			q.TierUsageHistogram[k] += v
		}
	}
	if len(rows) == 0 {
		return q
	}

	products := make(map[string]bool)
	prices := make(map[string]bool)
	quantities := make(map[string]bool)
	complete := 0
	placeholders := 0

	for _, r := range rows {
		products[r.ItemDescription] = true
		prices[r.UnitPrice] = true
		quantities[r.Quantity] = true
		if r.OrderDate != "" && r.Vendor != "" && r.InvoiceNumber != "" && r.ItemDescription != "" {
			complete++
		}
		if r.UnitPrice == "$1.60" && r.Quantity == "24" {
			placeholders++
		}
	}

	n := float64(len(rows))
	q.UniqueProducts = len(products)
	q.PriceDiversity = float64(len(prices)) / n
	q.QuantityDiversity = float64(len(quantities)) / n
	q.PlaceholderRows = placeholders
	q.CompleteRecordRatio = float64(complete) / n

	score := 0.0
	weight := 0.0

	coverage := float64(q.UniqueProducts) / 100
	if coverage > 1 {
		coverage = 1
	}
	score += coverage * 0.3
	weight += 0.3

	placeholderAbsence := 1.0
	if placeholders > 0 {
		placeholderAbsence = 0.0
	}
	score += placeholderAbsence * 0.2
	weight += 0.2

	if q.PriceDiversity > 0.5 {
		score += 0.2
	}
	weight += 0.2

	if q.QuantityDiversity > 0.3 {
		score += 0.1
	}
	weight += 0.1

	if q.CompleteRecordRatio > 0.95 {
		score += 0.2
	}
	weight += 0.2

	if weight > 0 {
		q.Score = score / weight
	}
	return q
}
