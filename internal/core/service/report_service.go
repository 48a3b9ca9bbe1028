package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

const defaultReportSize = 25

// ReportService projects user records into paginated, sortable, date-filtered
// report rows.
type ReportService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewReportService(users ports.UserRepository, log zerolog.Logger) *ReportService {
	return &ReportService{users: users, log: log}
}

// Report assembles one report page. Page is 1-based at this boundary. A blank
// SortField leaves the result unordered; otherwise SortDir must be asc or desc
// (case-insensitive) and anything else fails fast. Zero date bounds are open.
func (s *ReportService) Report(ctx context.Context, in ports.ReportInput) (*ports.ReportResult, error) {
	sortAsc := true
	if in.SortField != "" {
		var err error
		sortAsc, err = parseSortDir(in.SortDir)
		if err != nil {
			return nil, err
		}
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.Size
	if size <= 0 {
		size = defaultReportSize
	}

	users, total, err := s.users.Report(ctx, ports.ReportFilter{
		Role:      in.Role,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Skip:      int64(page-1) * int64(size),
		Limit:     int64(size),
		SortField: in.SortField,
		SortAsc:   sortAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("user report: %w", err)
	}

	rows := make([]ports.ReportRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, ports.ReportRow{
			UserID:    u.ID,
			Username:  u.Username,
			FullName:  u.FullName,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      u.RoleName,
			Active:    u.Active,
			CreatedAt: u.CreatedAt,
		})
	}

	return &ports.ReportResult{Rows: rows, Page: page, Size: size, Total: total}, nil
}

func parseSortDir(dir string) (asc bool, err error) {
	switch strings.ToLower(dir) {
	case "", "asc":
		return true, nil
	case "desc":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidSortDirection, dir)
	}
}
