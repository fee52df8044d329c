package ticketing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Encode builds the QR payload for a ticket. The format is stable and
// public: the ticket ID and the event short code joined by a dash.
func Encode(ticketID int, eventCode string) string {
	return fmt.Sprintf("%d-%s", ticketID, eventCode)
}

// Digest computes the keyed hash of a payload. This is what actually
// goes into distributed QR images, so scanned codes don't reveal the
// raw ID/event-code structure. It is one-way: redemption looks tickets
// up by their stored digest instead of decoding.
func Digest(payload string, secret []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
