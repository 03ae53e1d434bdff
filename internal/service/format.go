package service

import (
	"fmt"
	"strings"

	"pluvio/internal/actuation"
	"pluvio/internal/contract"
	"pluvio/internal/domain"
	"pluvio/internal/gate"
)

// assistantText picks the single line of assistant prose a response carries,
// for the conversation window.
func assistantText(resp *contract.ChatResponse) string {
	switch {
	case resp.ConfirmationMessage != "":
		return resp.ConfirmationMessage
	case resp.FollowUpQuestion != "" && resp.Answer != "":
		return resp.Answer + " " + resp.FollowUpQuestion
	case resp.FollowUpQuestion != "":
		return resp.FollowUpQuestion
	default:
		return resp.Answer
	}
}

func commandAnswer(outcome gate.Outcome) string {
	if outcome.Result.Message != "" {
		return outcome.Result.Message
	}
	if outcome.Result.OK {
		return "Done."
	}
	return "The controller rejected that command."
}

func formatStatus(snap actuation.StatusSnapshot) string {
	var b strings.Builder
	switch snap.System {
	case domain.SystemEnabled:
		b.WriteString("The system is enabled.")
	case domain.SystemDisabled:
		b.WriteString("The system is disabled.")
	default:
		fmt.Fprintf(&b, "The system is %s.", snap.System)
	}
	if snap.RainDelayHours > 0 {
		fmt.Fprintf(&b, " Rain delay active for %d more hour(s).", snap.RainDelayHours)
	}
	if len(snap.Active) == 0 {
		b.WriteString(" No zones are running.")
		return b.String()
	}
	for _, run := range snap.Active {
		fmt.Fprintf(&b, " Zone %d is running with %d minute(s) left.", run.ZoneID, (run.RemainingSec+59)/60)
	}
	return b.String()
}
