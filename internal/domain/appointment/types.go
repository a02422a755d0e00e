package appointment

import "immoview/internal/pkg/errs"

var (
	ErrInvalidStatus     = errs.New("invalid appointment status")
	ErrInvalidType       = errs.New("invalid appointment type")
	ErrInvalidTransition = errs.New("invalid appointment status transition")
	ErrInvalidDuration   = errs.New("appointment duration must be positive")
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusRequested, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// transitions is the full state machine. Terminal states have no entry.
// A status never returns to requested.
var transitions = map[Status][]Status{
	StatusRequested: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type Type string

const (
	TypeViewing      Type = "viewing"
	TypeConsultation Type = "consultation"
	TypeNegotiation  Type = "negotiation"
)

const DefaultType = TypeViewing

func NewType(s string) (Type, error) {
	switch Type(s) {
	case TypeViewing, TypeConsultation, TypeNegotiation:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) String() string {
	return string(t)
}
