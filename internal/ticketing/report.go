package ticketing

import (
	"math"

	"gorm.io/gorm"

	"github.com/rithysak/gatepass/internal/models"
)

type Statistics struct {
	Total      int64   `json:"total"`
	Scanned    int64   `json:"scanned"`
	Unscanned  int64   `json:"unscanned"`
	Attendance float64 `json:"attendance_rate"`
}

type Report struct {
	Tickets    []models.Ticket `json:"tickets"`
	Statistics Statistics      `json:"statistics"`
}

// Report lists tickets filtered by event and scan status. The
// statistics stay scoped to the event filter only, so the dashboard
// shows event-wide totals next to a status-filtered list.
func (s *Service) Report(eventID *int, redeemed *bool) (*Report, error) {
	listQuery := s.db.Model(&models.Ticket{}).Preload("Event")
	if eventID != nil {
		listQuery = listQuery.Where("event_id = ?", *eventID)
	}
	if redeemed != nil {
		listQuery = listQuery.Where("redeemed = ?", *redeemed)
	}

	var tickets []models.Ticket
	if err := listQuery.Order("id ASC").Find(&tickets).Error; err != nil {
		return nil, err
	}

	eventScoped := func() *gorm.DB {
		q := s.db.Model(&models.Ticket{})
		if eventID != nil {
			q = q.Where("event_id = ?", *eventID)
		}
		return q
	}

	var total, scanned int64
	if err := eventScoped().Count(&total).Error; err != nil {
		return nil, err
	}
	if err := eventScoped().Where("redeemed = ?", true).Count(&scanned).Error; err != nil {
		return nil, err
	}

	var rate float64
	if total > 0 {
		rate = math.Round(float64(scanned)/float64(total)*1000) / 10
	}

	return &Report{
		Tickets: tickets,
		Statistics: Statistics{
			Total:      total,
			Scanned:    scanned,
			Unscanned:  total - scanned,
			Attendance: rate,
		},
	}, nil
}
