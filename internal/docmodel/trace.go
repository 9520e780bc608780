package docmodel

// Trace is the per-call replacement for the legacy implementation's
// process-global get_last_extraction_method(). It is created fresh for
// every Run and passed by reference through the extractor call graph;
// callers inspect it after extraction completes. It never leaks state
// across requests.
type Trace struct {
	Vendor           Vendor
	PriceTierUsage   map[TierKind]int
	QtyTierUsage     map[TierKind]int
	DropCounts       map[DropReason]int
	EntitiesSkipped  int
	ContinuationsMerged int
	CodeStates       map[string]CodeOutcome
}

// CodeOutcome is the final position one product code reached in the
// per-code extraction state machine (spec section 4.5.9): the stage name
// it stopped at, and the drop reason if that stage is "dropped".
type CodeOutcome struct {
	Stage  string
	Reason string
}

// NewTrace returns an empty, ready-to-use Trace.
func NewTrace() *Trace {
	return &Trace{
		PriceTierUsage: make(map[TierKind]int),
		QtyTierUsage:   make(map[TierKind]int),
		DropCounts:     make(map[DropReason]int),
		CodeStates:     make(map[string]CodeOutcome),
	}
}

// RecordPriceTier increments the usage counter for the tier that resolved
// a price. TierNone is still recorded so callers can see "all tiers failed".
func (t *Trace) RecordPriceTier(k TierKind) {
	if t == nil {
		return
	}
	t.PriceTierUsage[k]++
}

// RecordQtyTier increments the usage counter for the tier that resolved a
// quantity tuple.
func (t *Trace) RecordQtyTier(k TierKind) {
	if t == nil {
		return
	}
	t.QtyTierUsage[k]++
}

// Drop increments the typed counter for reason r.
func (t *Trace) Drop(r DropReason) {
	if t == nil {
		return
	}
	t.DropCounts[r]++
}

// RecordCodeState stores the final stage a product code's per-code state
// machine reached, so a dropped code's stage/reason is visible on the
// Trace instead of being discarded with the extractor's local bookkeeping.
func (t *Trace) RecordCodeState(code, stage, reason string) {
	if t == nil {
		return
	}
	t.CodeStates[code] = CodeOutcome{Stage: stage, Reason: reason}
}
