package engine

import "errors"

// Sentinel failures returned by engine operations. Callers branch on these
// with errors.Is; transports translate them via ClassOf.
var (
	ErrInvalidTemplate  = errors.New("invalid map template")
	ErrTemplateNotFound = errors.New("template not found")

	ErrNotYourTurn     = errors.New("not your turn")
	ErrNotYourBuilding = errors.New("not your building")

	ErrWrongPhase      = errors.New("wrong phase for this action")
	ErrSlotOccupied    = errors.New("slot already occupied")
	ErrInvalidSlot     = errors.New("no such slot")
	ErrUnitUnavailable = errors.New("unit unavailable")
	ErrAlreadyActed    = errors.New("unit already acted this round")
	ErrFactoryBusy     = errors.New("factory already queued")

	ErrInvalidPath      = errors.New("invalid movement path")
	ErrOutOfRange       = errors.New("target out of range")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrInsufficientGold = errors.New("insufficient gold")
)

// ErrorClass partitions engine failures for transport mapping. Structural
// failures are malformed input, authorization failures are identity or turn
// ownership, state failures are legal requests against a stale view, rule
// failures are well-formed requests the rules forbid.
type ErrorClass string

const (
	ClassStructural    ErrorClass = "structural"
	ClassAuthorization ErrorClass = "authorization"
	ClassState         ErrorClass = "state"
	ClassRule          ErrorClass = "rule"
)

// ClassOf maps an engine error to its taxonomy class. Unknown errors are
// treated as structural.
func ClassOf(err error) ErrorClass {
	switch {
	case errors.Is(err, ErrNotYourTurn), errors.Is(err, ErrNotYourBuilding):
		return ClassAuthorization
	case errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrSlotOccupied),
		errors.Is(err, ErrUnitUnavailable),
		errors.Is(err, ErrAlreadyActed),
		errors.Is(err, ErrFactoryBusy):
		return ClassState
	case errors.Is(err, ErrInvalidPath),
		errors.Is(err, ErrOutOfRange),
		errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrInsufficientGold),
		errors.Is(err, ErrInvalidSlot):
		return ClassRule
	default:
		return ClassStructural
	}
}
