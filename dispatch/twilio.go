package dispatch

import (
	"github.com/lifeline-sos/lifeline/message"
	"github.com/lifeline-sos/lifeline/shared"
	"github.com/pkg/errors"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioDispatcher delivers the SOS text itself over SMS instead of
// opening a messaging app. Used when Twilio credentials are configured,
// e.g. when the API server runs headless.
type TwilioDispatcher struct {
	client *twilio.RestClient
	config shared.TwilioConfig
}

func NewTwilioDispatcher(config shared.TwilioConfig) *TwilioDispatcher {
	client := twilio.NewRestClientWithParams(twilio.RestClientParams{
		Username: config.AccountSid,
		Password: config.AuthToken,
	})

	return &TwilioDispatcher{client: client, config: config}
}

// Dispatch decodes the target back into recipients+body and sends one SMS
// per recipient. The first delivery error is returned, but callers treat
// dispatch as fire-and-forget either way.
func (d *TwilioDispatcher) Dispatch(target string) error {
	recipients, body, err := message.DecodeDispatchTarget(target)
	if err != nil {
		return err
	}

	var firstErr error
	for _, recipient := range recipients {
		params := &openapi.CreateMessageParams{}
		params.SetMessagingServiceSid(d.config.MessagingServiceSid)
		params.SetTo(recipient)
		params.SetBody(body)

		resp, err := d.client.ApiV2010.CreateMessage(params)
		if err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "failed to message %v", recipient)
			}
			continue
		}

		if resp.ErrorMessage != nil {
			logg.Warnf("twilio reported an error for %v: %v", recipient, *resp.ErrorMessage)
		}
	}

	return firstErr
}
