package ticketing

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rithysak/gatepass/internal/models"
)

type RedeemResult struct {
	TicketID   int    `json:"ticket_id"`
	HolderName string `json:"name"`
	EventName  string `json:"event"`
	Note       string `json:"note"`
}

// Redeem marks a scanned ticket as used, exactly once. The scanned
// value is either the raw payload (legacy codes) or the keyed digest
// embedded in emailed QR images, selected by isDigest.
func (s *Service) Redeem(scanned string, eventID int, isDigest bool) (*RedeemResult, error) {
	scanned = strings.TrimSpace(scanned)
	if scanned == "" {
		return nil, ErrInvalidCode
	}

	column := "qr_code"
	if isDigest {
		column = "qr_digest"
	}

	var ticket models.Ticket
	err := s.db.Preload("Event").Where(column+" = ?", scanned).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if ticket.EventID != eventID {
		return nil, &WrongEventError{EventName: ticket.Event.Name}
	}
	if ticket.Redeemed {
		return nil, ErrAlreadyUsed
	}

	// Conditional update so two concurrent scans can't both win: only
	// the caller that flips redeemed from false sets the timestamp.
	now := time.Now().UTC()
	res := s.db.Model(&models.Ticket{}).
		Where("id = ? AND redeemed = ?", ticket.ID, false).
		Updates(map[string]interface{}{
			"redeemed":    true,
			"redeemed_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyUsed
	}

	return &RedeemResult{
		TicketID:   ticket.ID,
		HolderName: ticket.Name,
		EventName:  ticket.Event.Name,
		Note:       ticket.Note,
	}, nil
}
