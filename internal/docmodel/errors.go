package docmodel

import (
	"errors"
	"fmt"
)

// Sentinel error kinds from spec section 7. The locally recovered kinds
// are recorded on a Trace and never returned to the caller. extract.Run
// returns neither of these two sentinels: a document with no text and no
// entities yields an empty row list, and no wall-clock budget is checked.
var (
	// ErrInputShape means the StructuredDocument is missing Text or Entities.
	ErrInputShape = errors.New("extract: structured document missing text or entities")

	// ErrBudgetExceeded means the wall-clock budget for the request was exhausted.
	ErrBudgetExceeded = errors.New("extract: wall-clock budget exceeded")
)

// PipelineError wraps a surfaced error with the operation that raised it,
// mirroring the teacher's Op/Err/Details error shape.
type PipelineError struct {
	Op      string
	Err     error
	Details string
}

func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("extract: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("extract: %s failed: %v", e.Op, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

func (e *PipelineError) Is(target error) bool { return errors.Is(e.Err, target) }

// NewPipelineError builds a PipelineError, wrapping idempotently if err is
// already one.
func NewPipelineError(op string, err error, details string) error {
	if err == nil {
		return nil
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return err
	}
	return &PipelineError{Op: op, Err: err, Details: details}
}

// DropReason enumerates why a candidate row or product code failed to
// reach Emitted. These are recorded on a Trace as typed counters, per
// spec section 9 ("observability counters... first-class outputs").
type DropReason string

const (
	DropMissingDescription  DropReason = "missing_description"
	DropMissingUPCAndDesc   DropReason = "missing_upc_and_description"
	DropPriceUnresolved     DropReason = "price_unresolved"
	DropZeroQuantity        DropReason = "zero_quantity"
	DropDescriptionEmptied  DropReason = "description_emptied_by_cleaning"
	DropEntityParseFailure  DropReason = "entity_parse_exception"
	DropDuplicateCode       DropReason = "duplicate_product_code"
)

// TierKind names the source that produced a resolved price or quantity
// value, used both for §4.5.3's "record which tier produced the value"
// requirement and for placeholder-suppression tracking.
type TierKind string

const (
	TierTabular         TierKind = "tabular"
	TierVerticalTabular TierKind = "vertical_tabular"
	TierPattern         TierKind = "pattern"
	TierPageContext     TierKind = "page_context"
	TierLegacy          TierKind = "legacy_shipped_back"
	TierNone            TierKind = "none"
)
