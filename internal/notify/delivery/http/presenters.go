package http

import (
	"repo-event-relay/internal/notify"
	"repo-event-relay/pkg/slack"
)

// --- Request DTOs ---

// notifyReq is the /notify body. Fields stay loosely typed because repository, sender
// and pr_number each arrive in more than one shape.
type notifyReq map[string]interface{}

func (r notifyReq) toPayload() notify.EventPayload {
	return notify.EventPayload(r)
}

// ---

type interactReq struct {
	Payload slack.InteractionPayload
}

func (r interactReq) validate() error {
	if len(r.Payload.Actions) == 0 {
		return notify.ErrUnknownAction
	}
	return nil
}

func (r interactReq) toInput() notify.InteractionInput {
	action := r.Payload.Actions[0]
	return notify.InteractionInput{
		ActionID: action.ActionID,
		Value:    action.Value,
		User:     r.Payload.User.DisplayName(),
	}
}

// --- Response DTOs ---

type notifyResp struct {
	Status string `json:"status"`
}

func (h *handler) newNotifyResp(d notify.Decision) notifyResp {
	return notifyResp{Status: d.Status}
}

type interactResp struct {
	Text string `json:"text"`
}

func (h *handler) newInteractResp(o notify.InteractionOutput) interactResp {
	return interactResp{Text: o.Text}
}
