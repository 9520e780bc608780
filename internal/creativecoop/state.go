package creativecoop

// stage is a code's position in the per-code extraction state machine of
// spec section 4.5.9: Discovered -> Mapped -> Priced -> Quantified ->
// Emitted, with Dropped reachable as a terminal from any stage.
type stage int

const (
	stageDiscovered stage = iota
	stageMapped
	stagePriced
	stageQuantified
	stageEmitted
	stageDropped
)

// codeState tracks one product code's progress through the pipeline and
// the reason it was dropped, if it was.
type codeState struct {
	code   string
	stage  stage
	reason string
}

func newCodeState(code string) *codeState {
	return &codeState{code: code, stage: stageDiscovered}
}

func (s *codeState) advance(to stage) {
	if s.stage == stageDropped {
		return
	}
	s.stage = to
}

func (s *codeState) drop(reason string) {
	s.stage = stageDropped
	s.reason = reason
}

func (s *codeState) dropped() bool {
	return s.stage == stageDropped
}

// String names the stage for observability output (spec section 4.5.9's
// state machine, surfaced on Trace rather than only mutated internally).
func (s stage) String() string {
	switch s {
	case stageDiscovered:
		return "discovered"
	case stageMapped:
		return "mapped"
	case stagePriced:
		return "priced"
	case stageQuantified:
		return "quantified"
	case stageEmitted:
		return "emitted"
	case stageDropped:
		return "dropped"
	default:
		return "unknown"
	}
}
