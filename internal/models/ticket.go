package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is one admission. The ID doubles as the public ticket number
// printed in the QR payload, so it is allocated from a bounded range
// instead of a sequence.
type Ticket struct {
	ID              int        `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	Email           string     `gorm:"size:100;not null" json:"email"`
	Phone           string     `gorm:"size:20;not null" json:"phone"`
	EventID         int        `gorm:"not null;index" json:"event_id"`
	Event           Event      `json:"event"`
	QRCode          string     `gorm:"size:100;unique;not null" json:"qr_code"`
	QRDigest        string     `gorm:"size:64;unique;not null" json:"-"`
	TicketNumber    int        `gorm:"not null;default:1" json:"ticket_number"`
	PurchaserEmail  string     `gorm:"size:100;not null" json:"purchaser_email"`
	PurchaseGroupID uuid.UUID  `gorm:"type:uuid;not null;index" json:"purchase_group_id"`
	Redeemed        bool       `gorm:"not null;default:false" json:"redeemed"`
	RedeemedAt      *time.Time `json:"redeemed_at"`
	Note            string     `gorm:"size:150" json:"note"`
	EmailSent       bool       `gorm:"not null;default:false" json:"email_sent"`
	EmailSentAt     *time.Time `json:"email_sent_at"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
}
