package slack

import (
	"fmt"
	"net/http"

	slackapi "github.com/slack-go/slack"
)

// VerifyRequest checks the X-Slack-Signature header of an interactive callback against body.
func VerifyRequest(header http.Header, body []byte, signingSecret string) error {
	sv, err := slackapi.NewSecretsVerifier(header, signingSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if _, err := sv.Write(body); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if err := sv.Ensure(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}
