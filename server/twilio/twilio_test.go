package twilio

import (
	"testing"

	"github.com/mayday-app/mayday/shared"
	"github.com/stretchr/testify/assert"
)

func TestNewClientConfigurationIsAllOrNothing(t *testing.T) {
	fullConfig := shared.TwilioConfig{
		AccountSid:  "AC0123456789",
		AuthToken:   "token",
		PhoneNumber: "+15550001111",
	}

	assert.True(t, NewClient(fullConfig, false).IsEnabled())

	missingToken := fullConfig
	missingToken.AuthToken = ""
	assert.False(t, NewClient(missingToken, false).IsEnabled())

	missingNumber := fullConfig
	missingNumber.PhoneNumber = ""
	assert.False(t, NewClient(missingNumber, false).IsEnabled())

	// Placeholder values from a sample env file don't count as configured
	placeholder := fullConfig
	placeholder.AccountSid = "your_account_sid_here"
	assert.False(t, NewClient(placeholder, false).IsEnabled())

	assert.False(t, NewClient(shared.TwilioConfig{}, false).IsEnabled())
}

func TestNewClientInTestMode(t *testing.T) {
	fullConfig := shared.TwilioConfig{
		AccountSid:  "AC0123456789",
		AuthToken:   "token",
		PhoneNumber: "+15550001111",
	}

	assert.False(t, NewClient(fullConfig, true).IsEnabled(), "Test mode should force simulated SMS")
}
