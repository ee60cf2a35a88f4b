// Package notifications holds the outbound delivery adapters: SMS drivers
// behind domain.SmsSender and the transactional mail sender.
package notifications

import (
	"strings"

	"github.com/igor-kostenevich/woorkroom-BE/internal/config"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
)

// NewSmsSender selects the SMS driver once at startup. Anything other than
// "twilio" falls back to the console driver, which is the development
// default.
func NewSmsSender(cfg *config.Config) domain.SmsSender {
	if strings.TrimSpace(strings.ToLower(cfg.SMSDriver)) == "twilio" {
		return NewTwilioSender(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	}
	return NewConsoleSender()
}
