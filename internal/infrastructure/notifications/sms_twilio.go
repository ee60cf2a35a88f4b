package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// TwilioSender implements domain.SmsSender via the Twilio REST API
type TwilioSender struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioSender creates a new Twilio SMS driver
func NewTwilioSender(accountSID, authToken, fromNumber string) domain.SmsSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{
		client:     client,
		fromNumber: fromNumber,
	}
}

// Send implements domain.SmsSender. Delivery failures propagate so the
// caller can fail the OTP request fast and let the user retry.
func (t *TwilioSender) Send(_ context.Context, toE164, message string) error {
	to := strings.ReplaceAll(toE164, " ", "")

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}

	return nil
}
