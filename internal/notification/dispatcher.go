package notification

import (
	"context"

	"go-hrms/internal/events"
)

//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock

// Dispatcher fans a workflow event out to its recipients. Implementations
// must be safe to call after the owning transaction has committed; a
// failed dispatch never rolls back workflow state.
type Dispatcher interface {
	DispatchLeaveEvent(ctx context.Context, event events.LeaveWorkflowEvent) error
}
