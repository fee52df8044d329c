package ticketing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rithysak/gatepass/internal/models"
)

// Service implements ticket issuance, redemption and attendance
// reporting on top of the ticket store.
type Service struct {
	db     *gorm.DB
	secret []byte
	alloc  *IDAllocator
}

func NewService(db *gorm.DB, secret string) *Service {
	return &Service{
		db:     db,
		secret: []byte(secret),
		alloc:  NewIDAllocator(),
	}
}

// Digest hashes a payload with the service's secret key.
func (s *Service) Digest(payload string) string {
	return Digest(payload, s.secret)
}

// TicketsByGroup returns all tickets of one purchase, in issue order.
func (s *Service) TicketsByGroup(groupID uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.Preload("Event").
		Where("purchase_group_id = ?", groupID).
		Order("ticket_number ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// MarkEmailSent records a successful confirmation send for every
// ticket in the purchase group.
func (s *Service) MarkEmailSent(groupID uuid.UUID) error {
	now := time.Now().UTC()
	return s.db.Model(&models.Ticket{}).
		Where("purchase_group_id = ?", groupID).
		Updates(map[string]interface{}{
			"email_sent":    true,
			"email_sent_at": now,
		}).Error
}
