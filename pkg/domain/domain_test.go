package domain_test

import (
	"testing"

	"github.com/aretw0/baxter/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluginNaming(t *testing.T) {
	assert.Equal(t, "plugin-get_random_number", domain.PluginTag("get_random_number"))
	assert.Equal(t, "plugin-get_random_number-action", domain.PluginActionKey("get_random_number"))
}

func TestSessionState_RecordAndTrigger(t *testing.T) {
	s := domain.NewSessionState("s1")
	assert.Nil(t, s.LastAction)
	assert.Nil(t, s.LastInput)

	s.Record("wie spät ist es", domain.Ptr("get_current_time"))
	trig := s.Trigger(nil)
	require.NotNil(t, trig.LastAction)
	assert.Equal(t, "get_current_time", *trig.LastAction)
	assert.Equal(t, "wie spät ist es", domain.Deref(trig.LastInput))
	assert.Equal(t, 1, s.Turns)

	// A non-replayable message clears the action but keeps the input.
	s.Record("nochmal", nil)
	assert.Nil(t, s.LastAction)
	assert.Equal(t, "nochmal", domain.Deref(s.LastInput))
}

func TestSessionState_CloneIsDeep(t *testing.T) {
	s := domain.NewSessionState("s1")
	s.Record("hi", domain.Ptr("greet_user"))

	c := s.Clone()
	*c.LastAction = "changed"
	assert.Equal(t, "greet_user", *s.LastAction)
}

func TestTrigger_WithLastActionCopies(t *testing.T) {
	orig := domain.Trigger{LastAction: domain.Ptr("tell_joke"), LastInput: domain.Ptr("witz")}
	next := orig.WithLastAction(domain.RepeatAction)

	assert.Equal(t, "tell_joke", *orig.LastAction)
	assert.Equal(t, domain.RepeatAction, *next.LastAction)
	assert.Same(t, orig.LastInput, next.LastInput)
}

func TestErrors_Unwrap(t *testing.T) {
	v := &domain.HandlerContractViolation{ActionKey: "x"}
	assert.ErrorIs(t, v, domain.ErrHandlerContract)
	assert.Contains(t, v.Error(), `"x"`)

	cause := assert.AnError
	exec := &domain.ActionExecutionError{ActionKey: "y", Err: cause}
	assert.ErrorIs(t, exec, cause)

	load := &domain.PluginLoadError{Source: "plugins/bad.go", Err: cause}
	assert.ErrorIs(t, load, cause)
	assert.Contains(t, load.Error(), "plugins/bad.go")
}
