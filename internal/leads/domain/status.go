package domain

// statusTransitions defines the allowed lifecycle edges. Lost is reachable
// from every active state; archived only from terminal states.
var statusTransitions = map[Status][]Status{
	StatusNew:                {StatusContacted, StatusQualified, StatusLost},
	StatusContacted:          {StatusQualified, StatusDiscoveryScheduled, StatusLost},
	StatusQualified:          {StatusDiscoveryScheduled, StatusProposalSent, StatusLost},
	StatusDiscoveryScheduled: {StatusDiscoveryCompleted, StatusLost},
	StatusDiscoveryCompleted: {StatusProposalSent, StatusLost},
	StatusProposalSent:       {StatusNegotiating, StatusWon, StatusLost},
	StatusNegotiating:        {StatusWon, StatusLost},
	StatusWon:                {StatusArchived},
	StatusLost:               {StatusArchived},
	StatusArchived:           {},
}

// CanTransition reports whether a lead may move from one status to another.
// Re-saving the current status is always allowed (idempotent update).
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
