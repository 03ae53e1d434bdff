package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pluvio/internal/contract"
	"pluvio/internal/teatest"
)

// scriptedChat is a ChatService stub that returns canned responses and
// records which entry points were hit.
type scriptedChat struct {
	response *contract.ChatResponse
	err      error

	messages  []string
	confirmed []string
	canceled  []string
}

func (s *scriptedChat) HandleMessage(_ context.Context, _, text string) (*contract.ChatResponse, error) {
	s.messages = append(s.messages, text)
	return s.response, s.err
}

func (s *scriptedChat) ConfirmPending(_ context.Context, _, messageID string) (*contract.ChatResponse, error) {
	s.confirmed = append(s.confirmed, messageID)
	return &contract.ChatResponse{ResponseType: contract.ResponseModification, Answer: "Zone started."}, nil
}

func (s *scriptedChat) CancelPending(_ context.Context, _, messageID string) (*contract.ChatResponse, error) {
	s.canceled = append(s.canceled, messageID)
	return &contract.ChatResponse{ResponseType: contract.ResponseAnswer, Answer: "Okay, I won't do that."}, nil
}

func newChatDriver(t *testing.T, chat *scriptedChat) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newChatModel(&App{Chat: chat}))
	d.DrainInit()
	return d
}

func TestChatModel_ShowsWelcome(t *testing.T) {
	d := newChatDriver(t, &scriptedChat{})
	assert.Contains(t, d.View(), "PLUVIO")
	assert.Contains(t, d.View(), "watering command")
}

func TestChatModel_RendersTurn(t *testing.T) {
	chat := &scriptedChat{response: &contract.ChatResponse{
		ResponseType: contract.ResponseAnswer,
		Answer:       "The system is enabled.",
	}}
	d := newChatDriver(t, chat)

	d.Submit("what's the status?")

	require.Equal(t, []string{"what's the status?"}, chat.messages)
	assert.Contains(t, d.View(), "what's the status?")
	assert.Contains(t, d.View(), "The system is enabled.")
}

func TestChatModel_ConfirmFlow(t *testing.T) {
	chat := &scriptedChat{response: &contract.ChatResponse{
		ResponseType:         contract.ResponseModification,
		ConfirmationMessage:  "Run zone 2 for 45 minutes?",
		MessageID:            "m1",
		RequiresConfirmation: true,
	}}
	d := newChatDriver(t, chat)

	d.Submit("run zone 2 for 45 minutes")
	assert.Contains(t, d.View(), "Run zone 2 for 45 minutes?")

	d.Submit("yes")
	assert.Equal(t, []string{"m1"}, chat.confirmed)
	assert.Empty(t, chat.canceled)
	assert.Contains(t, d.View(), "Zone started.")
}

func TestChatModel_DeclineFlow(t *testing.T) {
	chat := &scriptedChat{response: &contract.ChatResponse{
		ResponseType:         contract.ResponseModification,
		ConfirmationMessage:  "Stop all zones?",
		MessageID:            "m2",
		RequiresConfirmation: true,
	}}
	d := newChatDriver(t, chat)

	d.Submit("stop watering")
	d.Submit("no")

	assert.Equal(t, []string{"m2"}, chat.canceled)
	assert.Empty(t, chat.confirmed)
	assert.Contains(t, d.View(), "Okay, I won't do that.")
}

func TestChatModel_OtherInputIsNewMessage(t *testing.T) {
	chat := &scriptedChat{response: &contract.ChatResponse{
		ResponseType:         contract.ResponseModification,
		ConfirmationMessage:  "Run zone 1 for 45 minutes?",
		MessageID:            "m3",
		RequiresConfirmation: true,
	}}
	d := newChatDriver(t, chat)

	d.Submit("run zone 1 for 45 minutes")
	// Anything that isn't yes/no goes through as a fresh message.
	d.Submit("actually how hot is it today")

	assert.Len(t, chat.messages, 2)
	assert.Empty(t, chat.confirmed)
	assert.Empty(t, chat.canceled)
}

func TestChatModel_ErrorRendered(t *testing.T) {
	chat := &scriptedChat{err: errors.New("controller unreachable")}
	d := newChatDriver(t, chat)

	d.Submit("run zone 1")
	assert.Contains(t, d.View(), "controller unreachable")
}

func TestChatModel_EscQuits(t *testing.T) {
	d := newChatDriver(t, &scriptedChat{})
	d.PressEsc()
	assert.True(t, d.Quitting)
}
