// Package domain provides core business rules for the leads bounded context.
package domain

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusProposal  = "proposal"
	StatusClosed    = "closed"
	StatusLost      = "lost"
)

var knownStatuses = map[string]struct{}{
	StatusNew:       {},
	StatusContacted: {},
	StatusQualified: {},
	StatusProposal:  {},
	StatusClosed:    {},
	StatusLost:      {},
}

// IsKnownStatus reports whether status is a recognized pipeline stage.
func IsKnownStatus(status string) bool {
	_, ok := knownStatuses[status]
	return ok
}

// terminalStatuses are stages that conventionally end the pipeline. The state
// machine does not protect them: the board allows free drag between any two
// columns, so closed and lost leads can be reopened.
var terminalStatuses = map[string]bool{
	StatusClosed: true,
	StatusLost:   true,
}

// IsTerminalStatus reports whether status conventionally ends the pipeline.
func IsTerminalStatus(status string) bool {
	return terminalStatuses[status]
}
