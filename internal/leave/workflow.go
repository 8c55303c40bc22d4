package leave

import (
	"github.com/google/uuid"

	"go-hrms/internal/identity"
)

// Actor is the decision-maker's capability view. HR capability covers
// the Admin role as well; both queues answer to it.
type Actor struct {
	ID   uuid.UUID
	IsHR bool
	IsPM bool
}

// Decision is the outcome of an approve action: the status to move to
// and the role the actor is recorded as acting under.
type Decision struct {
	Next    WorkflowStatus
	Final   bool
	ActedAs identity.RoleKind
}

// InitialWorkflowStatus routes a fresh request into the right queue
// based on who is applying. Managers and interns skip the manager step
// and land directly with HR; everyone else starts with their manager.
func InitialWorkflowStatus(applicantRoles []identity.RoleKind) WorkflowStatus {
	for _, r := range applicantRoles {
		if r == identity.RoleProjectManager || r == identity.RoleIntern {
			return WorkflowPendingHR
		}
	}
	return WorkflowPendingPM
}

// normalizeQueue folds the legacy HR-queue label into its modern name so
// decision logic only ever sees the two live queues.
func normalizeQueue(s WorkflowStatus) WorkflowStatus {
	if s == WorkflowPendingApproval {
		return WorkflowPendingHR
	}
	return s
}

// ApproveDecision resolves what an approve action by actor does to a
// request currently in the given status. HR capability wins when the
// actor holds both: an HR approval is always final.
//
// Returns ok=false when the actor cannot approve from this status.
func ApproveDecision(current WorkflowStatus, actor Actor, applicantIsConsultant bool) (Decision, bool) {
	switch normalizeQueue(current) {
	case WorkflowPendingPM:
		if actor.IsHR {
			// HR may short-circuit the manager step entirely.
			return Decision{Next: WorkflowApproved, Final: true, ActedAs: identity.RoleHR}, true
		}
		if actor.IsPM {
			if applicantIsConsultant {
				// Consultants report to their manager only; no HR pass.
				return Decision{Next: WorkflowApproved, Final: true, ActedAs: identity.RoleProjectManager}, true
			}
			return Decision{Next: WorkflowPendingHR, Final: false, ActedAs: identity.RoleProjectManager}, true
		}
	case WorkflowPendingHR:
		if actor.IsHR {
			return Decision{Next: WorkflowApproved, Final: true, ActedAs: identity.RoleHR}, true
		}
	}
	return Decision{}, false
}

// RejectDecision resolves a reject action. HR can reject from either
// queue; a manager only while the request is still in the manager queue.
func RejectDecision(current WorkflowStatus, actor Actor) (Decision, bool) {
	switch normalizeQueue(current) {
	case WorkflowPendingPM:
		if actor.IsHR {
			return Decision{Next: WorkflowRejected, Final: true, ActedAs: identity.RoleHR}, true
		}
		if actor.IsPM {
			return Decision{Next: WorkflowRejected, Final: true, ActedAs: identity.RoleProjectManager}, true
		}
	case WorkflowPendingHR:
		if actor.IsHR {
			return Decision{Next: WorkflowRejected, Final: true, ActedAs: identity.RoleHR}, true
		}
	}
	return Decision{}, false
}
