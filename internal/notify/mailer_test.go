package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rithysak/gatepass/internal/models"
)

func TestBatchTextListsEveryTicket(t *testing.T) {
	event := models.Event{ID: 1, Name: "Launch Party", Code: "AB12CD"}
	tickets := []models.Ticket{
		{ID: 123456, Name: "Sok Dara (Ticket 1)", TicketNumber: 1, PurchaserEmail: "p@example.com"},
		{ID: 654321, Name: "Sok Dara (Ticket 2)", TicketNumber: 2, PurchaserEmail: "p@example.com"},
	}

	text := batchText(event, tickets)
	assert.Contains(t, text, "Launch Party")
	assert.Contains(t, text, "Ticket 1: ID 123456")
	assert.Contains(t, text, "Ticket 2: ID 654321")
	assert.Contains(t, text, "QR codes")
}

func TestBatchTextSingularForOneTicket(t *testing.T) {
	event := models.Event{ID: 1, Name: "Launch Party", Code: "AB12CD"}
	tickets := []models.Ticket{
		{ID: 123456, Name: "Sok Dara", TicketNumber: 1, PurchaserEmail: "p@example.com"},
	}

	text := batchText(event, tickets)
	assert.Contains(t, text, "Hello Sok Dara!")
	assert.Contains(t, text, "QR code to the event")
	assert.NotContains(t, text, "QR codes")
}
