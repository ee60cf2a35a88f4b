package notifications

import (
	"context"
	"log"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// ConsoleSender implements domain.SmsSender by logging the message. It is
// the development driver, so OTP flows can be exercised without a gateway.
type ConsoleSender struct{}

// NewConsoleSender creates a console SMS driver
func NewConsoleSender() domain.SmsSender {
	return &ConsoleSender{}
}

// Send implements domain.SmsSender
func (c *ConsoleSender) Send(_ context.Context, toE164, message string) error {
	log.Printf("[SMS to %s] %s", toE164, message)
	return nil
}
