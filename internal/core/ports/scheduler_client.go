package ports

import (
	"context"
	"time"

	"github.com/ibs-platform/user-directory/internal/core/domain"
)

// SchedulerClient reaches the interview scheduling service. Both calls are
// synchronous; transport failures surface as domain.ErrUpstreamUnavailable
// and are never retried here.
type SchedulerClient interface {
	// GetSlotsBetween returns the assignment records overlapping [start, end].
	// Boundary inclusivity is defined by the scheduling service; the bounds are
	// forwarded untouched.
	GetSlotsBetween(ctx context.Context, start, end time.Time) ([]domain.SlotAssignment, error)
	// GetAllSlots returns the full, unwindowed set of assignment records.
	GetAllSlots(ctx context.Context) ([]domain.SlotAssignment, error)
}
