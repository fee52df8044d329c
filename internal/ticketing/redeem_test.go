package ticketing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rithysak/gatepass/internal/models"
)

func issueOne(t *testing.T, svc *Service, eventID int, note string) IssuedTicket {
	t.Helper()
	result, err := svc.Issue(testPurchaser, eventID, 1, note)
	require.NoError(t, err)
	require.Len(t, result.Tickets, 1)
	return result.Tickets[0]
}

func loadTicket(t *testing.T, svc *Service, id int) models.Ticket {
	t.Helper()
	var ticket models.Ticket
	require.NoError(t, svc.db.First(&ticket, id).Error)
	return ticket
}

func TestRedeemByPayload(t *testing.T) {
	svc := newTestService(t)
	seedEvent(t, svc, 1, "Launch Party", "AB12CD")
	issued := issueOne(t, svc, 1, "press pass")

	result, err := svc.Redeem(issued.QRCode, 1, false)
	require.NoError(t, err)
	assert.Equal(t, issued.TicketID, result.TicketID)
	assert.Equal(t, "Sok Dara", result.HolderName)
	assert.Equal(t, "Launch Party", result.EventName)
	assert.Equal(t, "press pass", result.Note)

	ticket := loadTicket(t, svc, issued.TicketID)
	assert.True(t, ticket.Redeemed)
	require.NotNil(t, ticket.RedeemedAt)
}

func TestRedeemByDigest(t *testing.T) {
	svc := newTestService(t)
	seedEvent(t, svc, 1, "Launch Party", "AB12CD")
	issued := issueOne(t, svc, 1, "")

	// A digest is not valid on the raw payload path.
	_, err := svc.Redeem(issued.QRDigest, 1, false)
	assert.ErrorIs(t, err, ErrInvalidCode)

	result, err := svc.Redeem(issued.QRDigest, 1, true)
	require.NoError(t, err)
	assert.Equal(t, issued.TicketID, result.TicketID)
}

func TestRedeemTrimsWhitespace(t *testing.T) {
	svc := newTestService(t)
	seedEvent(t, svc, 1, "Launch Party", "AB12CD")
	issued := issueOne(t, svc, 1, "")

	_, err := svc.Redeem("  "+issued.QRCode+"\n", 1, false)
	require.NoError(t, err)
}

func TestRedeemTwiceFailsAndKeepsTimestamp(t *testing.T) {
	svc := newTestService(t)
	seedEvent(t, svc, 1, "Launch Party", "AB12CD")
	issued := issueOne(t, svc, 1, "")

	_, err := svc.Redeem(issued.QRCode, 1, false)
	require.NoError(t, err)
	first := loadTicket(t, svc, issued.TicketID)
	require.NotNil(t, first.RedeemedAt)

	_, err = svc.Redeem(issued.QRCode, 1, false)
	assert.ErrorIs(t, err, ErrAlreadyUsed)

	second := loadTicket(t, svc, issued.TicketID)
	assert.True(t, second.Redeemed)
	require.NotNil(t, second.RedeemedAt)
	assert.True(t, first.RedeemedAt.Equal(*second.RedeemedAt), "redemption timestamp must not be overwritten")
}

func TestRedeemWrongEventLeavesTicketUntouched(t *testing.T) {
	svc := newTestService(t)
	seedEvent(t, svc, 1, "Launch Party", "AB12CD")
	seedEvent(t, svc, 2, "Closing Night", "ZZ99XX")
	issued := issueOne(t, svc, 1, "")

	_, err := svc.Redeem(issued.QRCode, 2, false)
	assert.ErrorIs(t, err, ErrWrongEvent)

	var wrongEvent *WrongEventError
	require.ErrorAs(t, err, &wrongEvent)
	assert.Equal(t, "Launch Party", wrongEvent.EventName)

	ticket := loadTicket(t, svc, issued.TicketID)
	assert.False(t, ticket.Redeemed)
	assert.Nil(t, ticket.RedeemedAt)
}

func TestRedeemUnknownCode(t *testing.T) {
	svc := newTestService(t)
	seedEvent(t, svc, 1, "Launch Party", "AB12CD")

	_, err := svc.Redeem("999999-NOPE", 1, false)
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = svc.Redeem("   ", 1, false)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestRedeemLosesRaceToConcurrentScan(t *testing.T) {
	svc := newTestService(t)
	seedEvent(t, svc, 1, "Launch Party", "AB12CD")
	issued := issueOne(t, svc, 1, "")

	// Another scanner already flipped the row; the loser must observe
	// AlreadyUsed and never touch the winner's timestamp.
	res := svc.db.Model(&models.Ticket{}).
		Where("id = ? AND redeemed = ?", issued.TicketID, false).
		Update("redeemed", true)
	require.NoError(t, res.Error)
	require.EqualValues(t, 1, res.RowsAffected)

	_, err := svc.Redeem(issued.QRCode, 1, false)
	assert.ErrorIs(t, err, ErrAlreadyUsed)
}
