package slack

import (
	"encoding/json"

	slackapi "github.com/slack-go/slack"
)

// BuildMessage renders text as a mrkdwn section. When pr is non-nil, Merge and Cancel
// buttons carrying the PR reference are appended.
func BuildMessage(text string, pr *ActionValue) *slackapi.WebhookMessage {
	blocks := []slackapi.Block{
		slackapi.NewSectionBlock(slackapi.NewTextBlockObject(slackapi.MarkdownType, text, false, false), nil, nil),
	}

	if pr != nil {
		value, err := json.Marshal(pr)
		if err == nil {
			merge := slackapi.NewButtonBlockElement(ActionMerge, string(value),
				slackapi.NewTextBlockObject(slackapi.PlainTextType, ButtonMergeText, true, false)).
				WithStyle(slackapi.StylePrimary)
			cancel := slackapi.NewButtonBlockElement(ActionCancel, string(value),
				slackapi.NewTextBlockObject(slackapi.PlainTextType, ButtonCancelText, true, false)).
				WithStyle(slackapi.StyleDanger)
			blocks = append(blocks, slackapi.NewActionBlock(PRActionsBlockID, merge, cancel))
		}
	}

	return &slackapi.WebhookMessage{
		Text:   text,
		Blocks: &slackapi.Blocks{BlockSet: blocks},
	}
}
