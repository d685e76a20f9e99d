package booking

import (
	"errors"
	"fmt"

	"meetbook/services/availability"
)

// Error codes for scheduling failures. Handlers map each to a distinct HTTP
// status and user-facing message.
const (
	CodeInvalidRange     = "invalidRange"
	CodeSlotNotOfferable = "slotNotOfferable"
	CodeSlotConflict     = "slotConflict"
	CodeNotFound         = "notFound"
	CodeForbidden        = "forbidden"
	CodeInvalidStatus    = "invalidStatus"
)

// SchedulingError is a refusal with a machine-readable code. Reason is only
// set for slot-not-offerable refusals.
type SchedulingError struct {
	Code    string
	Message string
	Reason  availability.OfferableReason
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, message string) error {
	return &SchedulingError{Code: code, Message: message}
}

// ErrCode extracts the scheduling error code, or "" for other errors.
func ErrCode(err error) string {
	var se *SchedulingError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

var reasonMessages = map[availability.OfferableReason]string{
	availability.ReasonDurationNotAllowed: "this host does not offer meetings of that length",
	availability.ReasonOutsideWeekly:      "this host doesn't work that day or time",
	availability.ReasonDateBlocked:        "this host is unavailable on that date",
	availability.ReasonDailyCapReached:    "this host is fully booked that day",
	availability.ReasonBadTemplate:        "the host's availability settings are invalid",
}

func newNotOfferableError(reason availability.OfferableReason) error {
	msg, ok := reasonMessages[reason]
	if !ok {
		msg = "that time is not offerable"
	}
	return &SchedulingError{Code: CodeSlotNotOfferable, Message: msg, Reason: reason}
}
