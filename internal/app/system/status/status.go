// internal/app/system/status/status.go
package status

// Opportunity lifecycle. Open accepts new interest requests;
// in-progress and closed do not. Closed is terminal.
const (
	OpportunityOpen       = "open"
	OpportunityInProgress = "in-progress"
	OpportunityClosed     = "closed"
)

// InterestRequest lifecycle. Accepted and rejected are terminal.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// CollabGroup lifecycle.
const (
	GroupActive    = "active"
	GroupCompleted = "completed"
)

// Membership roles. Exactly one creator per group.
const (
	RoleCreator = "creator"
	RoleMember  = "member"
)

// Message kinds.
const (
	MessageText       = "text"
	MessageFileNotice = "file-notice"
)

// Opportunity priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
