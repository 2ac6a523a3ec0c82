// internal/models/slots.go
package models

// Slot names collected by DiningSuggestionIntent.
const (
	SlotLocation       = "location"
	SlotCuisine        = "cuisine"
	SlotDate           = "date"
	SlotTime           = "time"
	SlotNumberOfPeople = "numberOfPeople"
	SlotEmailAddress   = "emailAddress"
)

// SlotSet maps slot names to user supplied values. A missing key or a nil
// value means the slot has not been collected yet; both serialize as null.
type SlotSet map[string]*string

// Get returns the slot value, or nil when it has not been collected.
func (s SlotSet) Get(name string) *string {
	if s == nil {
		return nil
	}
	return s[name]
}

// Value returns the slot value or "" when it is absent.
func (s SlotSet) Value(name string) string {
	if v := s.Get(name); v != nil {
		return *v
	}
	return ""
}

// Clear forces the dialog engine to collect the slot again.
func (s SlotSet) Clear(name string) {
	if s != nil {
		s[name] = nil
	}
}

// Clone returns a shallow copy so callers can clear slots without touching
// the inbound event.
func (s SlotSet) Clone() SlotSet {
	out := make(SlotSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// StringPtr is a convenience for building slot sets.
func StringPtr(v string) *string {
	return &v
}

// ValidationResult is the outcome of slot validation. ViolatedSlot is empty
// when Valid is true. Message may be nil on failure, in which case the
// engine's build-time prompt applies.
type ValidationResult struct {
	Valid        bool
	ViolatedSlot string
	Message      *string
}

// ValidResult is the single passing result.
func ValidResult() ValidationResult {
	return ValidationResult{Valid: true}
}

// InvalidResult names the first failing slot.
func InvalidResult(slot string, message *string) ValidationResult {
	return ValidationResult{Valid: false, ViolatedSlot: slot, Message: message}
}
