package store

import (
	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// ScreenAssignmentSummary partitions a group's clients by whether they are
// pinned to a screen. It feeds correctness-sensitive UI such as disabling
// "start streaming" while screens remain uncovered.
type ScreenAssignmentSummary struct {
	// AllGroupClients are all clients assigned to the group
	AllGroupClients []v1alpha1.Client
	// AssignedToScreens are the group's clients pinned to a screen index
	AssignedToScreens []v1alpha1.Client
	// UnassignedToScreens are the group's clients without a screen index
	UnassignedToScreens []v1alpha1.Client
}

// UnassignedClients returns the clients not assigned to any group. The view
// is recomputed from the current snapshot on every call.
func (s *Store) UnassignedClients() []v1alpha1.Client {
	snap := s.Snapshot()

	var out []v1alpha1.Client
	for _, c := range snap.Clients {
		if c.GroupID == "" {
			out = append(out, c)
		}
	}
	return out
}

// ClientsForGroup returns the clients assigned to the given group
func (s *Store) ClientsForGroup(groupID string) []v1alpha1.Client {
	snap := s.Snapshot()

	var out []v1alpha1.Client
	for _, c := range snap.Clients {
		if c.GroupID == groupID {
			out = append(out, c)
		}
	}
	return out
}

// ScreenAssignmentSummaryFor partitions the given group's clients by screen
// assignment state
func (s *Store) ScreenAssignmentSummaryFor(groupID string) ScreenAssignmentSummary {
	var summary ScreenAssignmentSummary
	for _, c := range s.ClientsForGroup(groupID) {
		summary.AllGroupClients = append(summary.AllGroupClients, c)
		if c.AssignedToScreen() {
			summary.AssignedToScreens = append(summary.AssignedToScreens, c)
		} else {
			summary.UnassignedToScreens = append(summary.UnassignedToScreens, c)
		}
	}
	return summary
}
