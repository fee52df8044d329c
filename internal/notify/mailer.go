package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
	"github.com/skip2/go-qrcode"

	"github.com/rithysak/gatepass/internal/models"
)

// Mailer sends the confirmation email for one purchase group.
type Mailer interface {
	SendTicketBatch(ctx context.Context, event models.Event, tickets []models.Ticket) error
}

// MailerSendMailer delivers ticket emails through MailerSend, with one
// QR PNG attachment per ticket. The QR content is the ticket digest,
// not the raw payload.
type MailerSendMailer struct {
	client    *mailersend.Mailersend
	fromName  string
	fromEmail string
}

func NewMailerSendMailer(apiKey, fromName, fromEmail string) *MailerSendMailer {
	return &MailerSendMailer{
		client:    mailersend.NewMailersend(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (m *MailerSendMailer) SendTicketBatch(ctx context.Context, event models.Event, tickets []models.Ticket) error {
	if len(tickets) == 0 {
		return fmt.Errorf("no tickets to send")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
	message.SetRecipients([]mailersend.Recipient{{Email: tickets[0].PurchaserEmail}})

	ticketWord := "Ticket"
	if len(tickets) > 1 {
		ticketWord = "Tickets"
	}
	message.SetSubject(fmt.Sprintf("%s: Your %s", event.Name, ticketWord))

	for i, ticket := range tickets {
		png, err := qrcode.Encode(ticket.QRDigest, qrcode.Medium, 300)
		if err != nil {
			return fmt.Errorf("failed to render QR for ticket %d: %w", ticket.ID, err)
		}

		filename := "ticket_qrcode.png"
		if len(tickets) > 1 {
			filename = fmt.Sprintf("ticket_%d_qrcode.png", i+1)
		}
		message.AddAttachment(mailersend.Attachment{
			Filename: filename,
			Content:  base64.StdEncoding.EncodeToString(png),
		})
	}

	message.SetText(batchText(event, tickets))

	if _, err := m.client.Email.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}
	return nil
}

func batchText(event models.Event, tickets []models.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s!\n\n", tickets[0].Name)
	fmt.Fprintf(&b, "Thank you for registering for %s. Your ticket details:\n\n", event.Name)
	for _, ticket := range tickets {
		fmt.Fprintf(&b, "- Ticket %d: ID %d\n", ticket.TicketNumber, ticket.ID)
	}
	b.WriteString("\nBring the attached QR code")
	if len(tickets) > 1 {
		b.WriteString("s")
	}
	b.WriteString(" to the event. Each QR code can only be used once.\n")
	return b.String()
}
