package domain

const (
	ActivityCall    = "call"
	ActivityText    = "text"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityNote    = "note"
)

var knownActivityTypes = map[string]struct{}{
	ActivityCall:    {},
	ActivityText:    {},
	ActivityEmail:   {},
	ActivityMeeting: {},
	ActivityNote:    {},
}

// IsKnownActivityType reports whether t is a recognized activity log type.
func IsKnownActivityType(t string) bool {
	_, ok := knownActivityTypes[t]
	return ok
}
