package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

// PanelService reconciles the locally known panelist pool against slot
// assignments owned by the scheduling service. Both operations are pure reads;
// no state is retained between calls.
type PanelService struct {
	users     ports.UserRepository
	scheduler ports.SchedulerClient
	log       zerolog.Logger
}

func NewPanelService(users ports.UserRepository, scheduler ports.SchedulerClient, log zerolog.Logger) *PanelService {
	return &PanelService{users: users, scheduler: scheduler, log: log}
}

// AvailablePanelists returns the users assigned to slots overlapping
// [start, end]. An empty slot list or an all-unassigned slot list yields the
// empty set; the user store is never queried with an empty id set, since
// "matching none of these ids" must not degenerate into "all users".
func (s *PanelService) AvailablePanelists(ctx context.Context, start, end time.Time) ([]*domain.User, error) {
	slots, err := s.scheduler.GetSlotsBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("available panelists: %w", err)
	}
	if len(slots) == 0 {
		return []*domain.User{}, nil
	}

	ids := distinctPanelistIDs(slots)
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("available panelists: %w", err)
	}
	return users, nil
}

// PendingPanelists returns every PANEL-role user that appears in no assignment
// record at all, independent of slot times. A scheduler failure is propagated,
// never masked as "zero pending".
func (s *PanelService) PendingPanelists(ctx context.Context) ([]*domain.User, error) {
	panelists, err := s.users.FindByRoleName(ctx, domain.RolePanel)
	if err != nil {
		return nil, fmt.Errorf("pending panelists: %w", err)
	}

	slots, err := s.scheduler.GetAllSlots(ctx)
	if err != nil {
		s.log.Error().Err(err).Int("panelists_loaded", len(panelists)).Msg("scheduler unreachable while reconciling pending panelists")
		return nil, fmt.Errorf("pending panelists: %w", err)
	}

	assigned := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		if slot.PanelistID != nil {
			assigned[*slot.PanelistID] = struct{}{}
		}
	}

	pending := make([]*domain.User, 0, len(panelists))
	for _, p := range panelists {
		if _, ok := assigned[p.ID]; !ok {
			pending = append(pending, p)
		}
	}
	return pending, nil
}

// distinctPanelistIDs extracts the set of distinct non-nil panelist ids.
// Unassigned slots never match any user and are filtered before the set is built.
func distinctPanelistIDs(slots []domain.SlotAssignment) []string {
	seen := make(map[string]struct{}, len(slots))
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.PanelistID == nil {
			continue
		}
		if _, dup := seen[*slot.PanelistID]; dup {
			continue
		}
		seen[*slot.PanelistID] = struct{}{}
		ids = append(ids, *slot.PanelistID)
	}
	return ids
}
