// Package telephony places the emergency escalation call through Twilio.
// The call is fire-and-forget from the router's point of view: failures are
// logged by the caller and never shown to the user.
package telephony

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// An emergency request must never hang on a stalled Twilio API call; the
// HTTP client and the per-call context are both bounded by this.
const defaultCallTimeout = 15 * time.Second

// voiceAPI is the slice of the Twilio REST surface the caller needs.
type voiceAPI interface {
	CreateCall(params *twilioapi.CreateCallParams) (*twilioapi.ApiV2010Call, error)
}

type TwilioCaller struct {
	api      voiceAPI
	to       string
	from     string
	twimlURL string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewCallerFromEnv builds a caller from TWILIO_ACCOUNT_SID,
// TWILIO_AUTH_TOKEN, TWILIO_FROM_NUMBER, EMERGENCY_CONTACT_NUMBER and
// EMERGENCY_TWIML_URL. Returns nil when credentials are not configured so
// wiring can treat escalation as a no-op in development.
func NewCallerFromEnv(log zerolog.Logger) *TwilioCaller {
	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	if sid == "" || token == "" {
		log.Warn().Msg("twilio credentials not configured, emergency calls disabled")
		return nil
	}
	base := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(sid, token),
		HTTPClient:  &http.Client{Timeout: defaultCallTimeout},
	}
	base.SetAccountSid(sid)
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
		Client:   base,
	})
	return &TwilioCaller{
		api:      rest.Api,
		to:       os.Getenv("EMERGENCY_CONTACT_NUMBER"),
		from:     os.Getenv("TWILIO_FROM_NUMBER"),
		twimlURL: os.Getenv("EMERGENCY_TWIML_URL"),
		timeout:  defaultCallTimeout,
		log:      log,
	}
}

// PlaceCall asks Twilio to dial the emergency contact. Twilio queues the
// call and completes it asynchronously; this returns as soon as the request
// is accepted, or with an error once the call timeout expires.
func (c *TwilioCaller) PlaceCall(ctx context.Context) error {
	if c.to == "" || c.from == "" {
		return fmt.Errorf("emergency contact numbers are not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &twilioapi.CreateCallParams{}
	params.SetTo(c.to)
	params.SetFrom(c.from)
	params.SetUrl(c.twimlURL)

	type result struct {
		call *twilioapi.ApiV2010Call
		err  error
	}
	// The SDK call has no context plumbing; the HTTP client's own timeout
	// guarantees the goroutine terminates.
	done := make(chan result, 1)
	go func() {
		call, err := c.api.CreateCall(params)
		done <- result{call, err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("create call: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("create call: %w", res.err)
		}
		if res.call != nil && res.call.Sid != nil {
			c.log.Info().Str("call_sid", *res.call.Sid).Msg("emergency call placed")
		}
		return nil
	}
}
