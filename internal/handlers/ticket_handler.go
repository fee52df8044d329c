package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/rithysak/gatepass/internal/helpers"
	"github.com/rithysak/gatepass/internal/middleware"
	"github.com/rithysak/gatepass/internal/models"
	"github.com/rithysak/gatepass/internal/ticketing"
)

type IssueRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	EventID  int    `json:"event_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Note     string `json:"note"`
}

type VerifyRequest struct {
	QRCode   string `json:"qr_code" binding:"required"`
	EventID  int    `json:"event_id" binding:"required"`
	IsDigest bool   `json:"is_digest"`
}

type ResendRequest struct {
	PurchaseGroupID uuid.UUID `json:"purchase_group_id" binding:"required"`
}

func ticketService(c *gin.Context) (*ticketing.Service, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return ticketing.NewService(db.(*gorm.DB), os.Getenv("QR_SECRET_KEY")), true
}

// IssueTickets registers a purchaser for an event and creates their
// ticket batch, then emails the QR codes when a mailer is configured.
func IssueTickets(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	svc, ok := ticketService(c)
	if !ok {
		return
	}

	purchaser := ticketing.Purchaser{Name: req.Name, Email: req.Email, Phone: req.Phone}
	result, err := svc.Issue(purchaser, req.EventID, req.Quantity, req.Note)
	if err != nil {
		respondTicketingError(c, err)
		return
	}

	sendTicketEmail(c, svc, result.PurchaseGroupID)

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Tickets created successfully.",
		"purchase_group_id": result.PurchaseGroupID,
		"event":             result.EventName,
		"tickets":           result.Tickets,
		"total_tickets":     len(result.Tickets),
	})
}

// VerifyTicket redeems a scanned QR code for entry, exactly once.
func VerifyTicket(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	svc, ok := ticketService(c)
	if !ok {
		return
	}

	result, err := svc.Redeem(req.QRCode, req.EventID, req.IsDigest)
	if err != nil {
		respondTicketingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "QR Code verified successfully.",
		"ticket_id": result.TicketID,
		"name":      result.HolderName,
		"event":     result.EventName,
		"note":      result.Note,
	})
}

// GetAttendance lists tickets with scan statistics for the admin
// dashboard, optionally filtered by event and scan status.
func GetAttendance(c *gin.Context) {
	svc, ok := ticketService(c)
	if !ok {
		return
	}

	var eventID *int
	if raw := c.Query("event_id"); raw != "" && raw != "all" {
		id, err := helpers.StringToInt(raw)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
			return
		}
		eventID = &id
	}

	var redeemed *bool
	switch c.Query("status") {
	case "scanned":
		v := true
		redeemed = &v
	case "unscanned":
		v := false
		redeemed = &v
	}

	report, err := svc.Report(eventID, redeemed)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error fetching attendance data.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets":    report.Tickets,
		"statistics": report.Statistics,
	})
}

// TicketQR renders the scannable PNG for one ticket.
func TicketQR(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	ticketID, err := helpers.StringToInt(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID.")
		return
	}

	var ticket models.Ticket
	if err := gormDB.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Ticket not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ticket.")
		return
	}

	qrImage, err := qrcode.Encode(ticket.QRDigest, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}

// ResendTickets re-sends the confirmation email for a purchase group.
func ResendTickets(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	svc, ok := ticketService(c)
	if !ok {
		return
	}

	tickets, err := svc.TicketsByGroup(req.PurchaseGroupID)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving tickets.")
		return
	}
	if len(tickets) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Purchase group not found.")
		return
	}

	mailer := middleware.GetMailer(c)
	if mailer == nil {
		helpers.RespondWithError(c, http.StatusServiceUnavailable, "Email delivery is not configured.")
		return
	}

	if err := mailer.SendTicketBatch(c.Request.Context(), tickets[0].Event, tickets); err != nil {
		log.Printf("failed to resend tickets for group %s: %v", req.PurchaseGroupID, err)
		helpers.RespondWithError(c, http.StatusBadGateway, "Failed to send ticket email.")
		return
	}

	if err := svc.MarkEmailSent(req.PurchaseGroupID); err != nil {
		log.Printf("failed to mark email sent for group %s: %v", req.PurchaseGroupID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Ticket email sent successfully.",
		"recipient":    tickets[0].PurchaserEmail,
		"ticket_count": len(tickets),
	})
}

// sendTicketEmail is best-effort: a failed send never rolls back the
// issued tickets, it just leaves the email_sent flag unset.
func sendTicketEmail(c *gin.Context, svc *ticketing.Service, groupID uuid.UUID) {
	mailer := middleware.GetMailer(c)
	if mailer == nil {
		return
	}

	tickets, err := svc.TicketsByGroup(groupID)
	if err != nil || len(tickets) == 0 {
		log.Printf("failed to load tickets for email, group %s: %v", groupID, err)
		return
	}

	if err := mailer.SendTicketBatch(c.Request.Context(), tickets[0].Event, tickets); err != nil {
		log.Printf("failed to email tickets for group %s: %v", groupID, err)
		return
	}

	if err := svc.MarkEmailSent(groupID); err != nil {
		log.Printf("failed to mark email sent for group %s: %v", groupID, err)
	}
}

func respondTicketingError(c *gin.Context, err error) {
	var wrongEvent *ticketing.WrongEventError
	switch {
	case errors.As(err, &wrongEvent):
		helpers.RespondWithError(c, http.StatusConflict, "Ticket belongs to a different event: "+wrongEvent.EventName+".")
	case errors.Is(err, ticketing.ErrAlreadyUsed):
		helpers.RespondWithError(c, http.StatusConflict, "QR Code already used.")
	case errors.Is(err, ticketing.ErrInvalidCode):
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid QR Code.")
	case errors.Is(err, ticketing.ErrEventNotFound):
		helpers.RespondWithError(c, http.StatusBadRequest, "Event not found.")
	case errors.Is(err, ticketing.ErrInvalidQuantity):
		helpers.RespondWithError(c, http.StatusBadRequest, "Quantity must be between 1 and 10.")
	case errors.Is(err, ticketing.ErrValidationFailed):
		helpers.RespondWithError(c, http.StatusBadRequest, "All fields are required.")
	case errors.Is(err, ticketing.ErrCapacityExhausted):
		helpers.RespondWithError(c, http.StatusInternalServerError, "No more ticket IDs available.")
	default:
		helpers.RespondWithError(c, http.StatusInternalServerError, "Internal server error.")
	}
}
