package ticketing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rithysak/gatepass/internal/models"
)

// maxIssueAttempts bounds how often a whole batch is re-allocated when
// the database rejects an insert for an ID or payload collision. The
// sampler works from a snapshot, so a concurrent purchase can grab the
// same free slot first.
const maxIssueAttempts = 3

type Purchaser struct {
	Name  string
	Email string
	Phone string
}

type IssuedTicket struct {
	TicketID     int    `json:"id"`
	QRCode       string `json:"qr_code"`
	QRDigest     string `json:"qr_digest"`
	TicketNumber int    `json:"ticket_number"`
}

type IssueResult struct {
	PurchaseGroupID uuid.UUID
	EventName       string
	Tickets         []IssuedTicket
}

// Issue creates quantity tickets for one purchase in a single
// transaction. Either every ticket is persisted or none are.
func (s *Service) Issue(p Purchaser, eventID int, quantity int, note string) (*IssueResult, error) {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Email) == "" || strings.TrimSpace(p.Phone) == "" {
		return nil, fmt.Errorf("%w: name, email and phone are required", ErrValidationFailed)
	}
	if quantity < 1 || quantity > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		result, err := s.issueOnce(p, eventID, quantity, note)
		if err == nil {
			return result, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, ErrStorageConflict
}

func (s *Service) issueOnce(p Purchaser, eventID int, quantity int, note string) (*IssueResult, error) {
	var result *IssueResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var usedIDs []int
		if err := tx.Model(&models.Ticket{}).Pluck("id", &usedIDs).Error; err != nil {
			return err
		}
		used := make(map[int]struct{}, len(usedIDs))
		for _, id := range usedIDs {
			used[id] = struct{}{}
		}

		ids, err := s.alloc.Allocate(quantity, used)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		groupID := uuid.New()
		tickets := make([]models.Ticket, 0, quantity)
		issued := make([]IssuedTicket, 0, quantity)

		for i, id := range ids {
			holder := p.Name
			if quantity > 1 {
				holder = fmt.Sprintf("%s (Ticket %d)", p.Name, i+1)
			}
			payload := Encode(id, event.Code)
			digest := Digest(payload, s.secret)

			tickets = append(tickets, models.Ticket{
				ID:              id,
				Name:            holder,
				Email:           p.Email,
				Phone:           p.Phone,
				EventID:         event.ID,
				QRCode:          payload,
				QRDigest:        digest,
				TicketNumber:    i + 1,
				PurchaserEmail:  p.Email,
				PurchaseGroupID: groupID,
				Note:            note,
				CreatedAt:       now,
			})
			issued = append(issued, IssuedTicket{
				TicketID:     id,
				QRCode:       payload,
				QRDigest:     digest,
				TicketNumber: i + 1,
			})
		}

		if err := tx.Create(&tickets).Error; err != nil {
			return err
		}

		result = &IssueResult{
			PurchaseGroupID: groupID,
			EventName:       event.Name,
			Tickets:         issued,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Postgres says "duplicate key value violates unique constraint",
	// sqlite says "UNIQUE constraint failed".
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
