package formatter

import (
	"strings"

	"pluvio/internal/contract"
)

// FormatChatWelcome renders the chat shell greeting.
func FormatChatWelcome() string {
	var b strings.Builder
	b.WriteString(Header("Pluvio"))
	b.WriteString("\n")
	b.WriteString(Dim("Ask about your yard or give a watering command. Esc to exit.\n"))
	return b.String()
}

// FormatChatResponse renders one assistant turn for the chat transcript.
func FormatChatResponse(resp *contract.ChatResponse) string {
	var parts []string

	if resp.Answer != "" {
		parts = append(parts, StyleFg.Render(resp.Answer))
	}
	if resp.ConfirmationMessage != "" {
		parts = append(parts,
			StyleYellow.Render(resp.ConfirmationMessage),
			Dim("Reply yes to proceed or no to cancel."),
		)
	}
	if resp.DirectChangeSchedule != nil {
		parts = append(parts, StyleGreen.Render("Plan updated."))
	}
	if resp.FollowUpQuestion != "" {
		parts = append(parts, StylePurple.Render(resp.FollowUpQuestion))
	}
	if len(parts) == 0 {
		parts = append(parts, Dim("(no response)"))
	}
	return strings.Join(parts, "\n")
}
