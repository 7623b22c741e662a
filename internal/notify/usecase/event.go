package usecase

import (
	"context"
	"fmt"

	"repo-event-relay/internal/agent/orchestrator"
	"repo-event-relay/internal/agent/tools"
	"repo-event-relay/internal/model"
	"repo-event-relay/internal/notify"
	"repo-event-relay/pkg/metrics"
)

// OnEvent runs detect → filter → identify → deduplicate → format → deliver.
// Filtered and failed deliveries are reported through the Decision, not as errors.
func (uc *implUseCase) OnEvent(ctx context.Context, payload notify.EventPayload) (notify.Decision, error) {
	d := notify.Decision{EventType: detectEventType(payload)}
	action := stringField(payload, "action")

	if d.EventType == notify.EventTypePullRequest {
		if action == notify.ActionSynchronize {
			return uc.decide(ctx, d, notify.OutcomeIgnored, notify.StatusIgnoredSynchronize), nil
		}
		if len(uc.allowedActions) > 0 {
			if _, ok := uc.allowedActions[action]; !ok {
				return uc.decide(ctx, d, notify.OutcomeIgnored, fmt.Sprintf(notify.StatusIgnoredAction, action)), nil
			}
		}
	}

	d.Repo = repoName(payload)
	if n, ok := prNumber(payload); ok {
		d.PRNumber = model.IntPtr(n)
		if !uc.handled.Admit(n) {
			return uc.decide(ctx, d, notify.OutcomeDuplicate, fmt.Sprintf(notify.StatusDuplicate, n)), nil
		}
	}

	d.Message = uc.format(payload, d)

	text, err := uc.deliver(ctx, d)
	if err != nil {
		return uc.decide(ctx, d, notify.OutcomeDeliveryFailed, fmt.Sprintf(notify.StatusDeliveryFailed, err.Error())), nil
	}
	if failed(text) {
		return uc.decide(ctx, d, notify.OutcomeDeliveryFailed, fmt.Sprintf(notify.StatusDeliveryFailed, text)), nil
	}
	return uc.decide(ctx, d, notify.OutcomeDelivered, notify.StatusNotified), nil
}

func (uc *implUseCase) format(payload notify.EventPayload, d notify.Decision) string {
	ts := stringField(payload, "timestamp")
	if ts == "" {
		ts = uc.clock.Format(uc.clock.Now())
	} else {
		ts = uc.clock.FromUTC(ts)
	}

	return fmt.Sprintf(notify.MessageTemplate,
		d.EventType,
		d.Repo,
		stringField(payload, "title"),
		stringField(payload, "description"),
		ts,
		senderName(payload),
	)
}

// deliver sends the formatted message and returns the notification tool's result text.
func (uc *implUseCase) deliver(ctx context.Context, d notify.Decision) (string, error) {
	if uc.usePlanner {
		res, err := uc.dispatcher.Run(ctx, []orchestrator.Turn{
			orchestrator.HumanTurn(fmt.Sprintf(notify.PlannerPrompt, d.Message)),
		})
		if err != nil {
			return "", err
		}
		text, ok := res.ToolResult(tools.NameSendSlackNotification)
		if !ok {
			return "", notify.ErrNotDelivered
		}
		return text, nil
	}

	args := map[string]interface{}{
		"message":    d.Message,
		"event_type": d.EventType,
		"repo":       d.Repo,
	}
	if d.PRNumber != nil {
		args["pr_number"] = *d.PRNumber
	}

	res, err := uc.invoke(ctx, tools.NameSendSlackNotification, args)
	if err != nil {
		return "", err
	}
	return resultText(res), nil
}

func (uc *implUseCase) decide(ctx context.Context, d notify.Decision, outcome notify.Outcome, status string) notify.Decision {
	d.Outcome = outcome
	d.Status = status

	switch outcome {
	case notify.OutcomeDelivered:
		uc.metrics.NotifyDecision(metrics.DecisionNotified)
		uc.l.Infof(ctx, "%s: delivered %s on %s", notify.LogPrefixOnEvent, d.EventType, d.Repo)
	case notify.OutcomeDuplicate:
		uc.metrics.NotifyDecision(metrics.DecisionDuplicate)
		uc.l.Infof(ctx, "%s: %s", notify.LogPrefixOnEvent, status)
	case notify.OutcomeDeliveryFailed:
		uc.metrics.NotifyDecision(metrics.DecisionFailed)
		uc.l.Warnf(ctx, "%s: %s", notify.LogPrefixOnEvent, status)
	default:
		uc.metrics.NotifyDecision(metrics.DecisionIgnored)
		uc.l.Debugf(ctx, "%s: %s", notify.LogPrefixOnEvent, status)
	}
	return d
}
