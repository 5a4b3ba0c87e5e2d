package action

import (
	"context"
	"fmt"

	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/template"
)

// RepeatAction replays the previous action with the previous input.
type RepeatAction struct{}

// NewRepeatAction returns the replay action.
func NewRepeatAction() *RepeatAction {
	return &RepeatAction{}
}

func replayable(lastAction *string) bool {
	if lastAction == nil {
		return false
	}
	switch *lastAction {
	case domain.RepeatAction, domain.StopwordAction:
		return false
	}
	return true
}

// GetResponse re-dispatches Trigger.LastAction and wraps its response into the
// main template's {response} slot.
func (RepeatAction) GetResponse(ctx context.Context, call Call) (string, error) {
	if !replayable(call.Trigger.LastAction) {
		return call.ErrorTemplate, nil
	}
	if call.Utils == nil || call.Utils.Classifier() == nil {
		return "", fmt.Errorf("repeat needs a classifier to look up %q", *call.Trigger.LastAction)
	}
	last := *call.Trigger.LastAction

	intent, ok := call.Utils.Classifier().GetIntentByAction(last)
	if !ok {
		return call.ErrorTemplate, nil
	}

	next := call.Trigger.WithLastAction(domain.RepeatAction)
	resp, err := call.Utils.Dispatcher().Dispatch(ctx, domain.Deref(call.Trigger.LastInput), &last, intent.MainTemplate, intent.ErrorTemplate, next)
	if err != nil {
		return "", err
	}
	if resp == nil || *resp == "" {
		return call.ErrorTemplate, nil
	}

	return template.Format(call.MainTemplate, map[string]any{"response": *resp})
}
