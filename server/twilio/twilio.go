package twilio

import (
	"strings"

	"github.com/mayday-app/mayday/shared"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type ClientWrapper struct {
	client  *twilio.RestClient
	config  shared.TwilioConfig
	enabled bool
}

// NewClient wraps the twilio REST client. Configuration is all-or-nothing:
// unless the account sid, auth token & sender number are all present (and the
// sid isn't a 'your_' placeholder from a sample env file), the client stays
// disabled & the alert fan-out runs in simulated mode. 'testMode' forces
// the same, so tests never hit the network.
func NewClient(config shared.TwilioConfig, testMode bool) *ClientWrapper {
	if !credentialsProvided(config) || testMode {
		return &ClientWrapper{config: config}
	}

	client := twilio.NewRestClientWithParams(twilio.RestClientParams{
		Username: config.AccountSid,
		Password: config.AuthToken,
	})

	return &ClientWrapper{client: client, config: config, enabled: true}
}

func (cw *ClientWrapper) IsEnabled() bool {
	return cw.enabled
}

// SendMessage texts 'msg' to 'to' & returns the provider message sid
func (cw *ClientWrapper) SendMessage(to, msg string) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetFrom(cw.config.PhoneNumber)
	params.SetTo(to)
	params.SetBody(msg)

	resp, err := cw.client.ApiV2010.CreateMessage(params)
	if err != nil {
		return "", err
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}

	return sid, nil
}

func credentialsProvided(config shared.TwilioConfig) bool {
	return config.AccountSid != "" &&
		config.AuthToken != "" &&
		config.PhoneNumber != "" &&
		!strings.HasPrefix(config.AccountSid, "your_")
}
