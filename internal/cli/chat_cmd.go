package cli

import (
	"context"
	"strings"

	"pluvio/internal/cli/formatter"
	"pluvio/internal/contract"
	"pluvio/internal/conversation"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation with the irrigation assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return cmd.Help()
			}
			model := newChatModel(app)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}
}

// chatModel is the bubbletea shell for multi-turn conversation. Pending
// confirmations are answered inline: while pendingID is set, "yes"/"no"
// resolve the parked command and anything else is treated as a new message
// (which leaves the pending action to expire with its session).
type chatModel struct {
	app   *App
	input textinput.Model

	messages  []string
	pendingID string
	sessionID string
}

func newChatModel(app *App) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	return &chatModel{
		app:       app,
		input:     ti,
		messages:  []string{formatter.FormatChatWelcome()},
		sessionID: conversation.DefaultSessionID,
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if input == "" {
				return m, nil
			}
			return m.handleInput(input)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) handleInput(input string) (tea.Model, tea.Cmd) {
	m.messages = append(m.messages, formatter.Dim("You: ")+input)

	ctx := context.Background()
	var (
		resp *contract.ChatResponse
		err  error
	)
	switch {
	case m.pendingID != "" && isAffirmative(input):
		resp, err = m.app.Chat.ConfirmPending(ctx, m.sessionID, m.pendingID)
		m.pendingID = ""
	case m.pendingID != "" && isNegative(input):
		resp, err = m.app.Chat.CancelPending(ctx, m.sessionID, m.pendingID)
		m.pendingID = ""
	default:
		resp, err = m.app.Chat.HandleMessage(ctx, m.sessionID, input)
	}
	if err != nil {
		m.messages = append(m.messages, formatter.StyleRed.Render("Error: "+err.Error()))
		return m, nil
	}

	if resp.RequiresConfirmation {
		m.pendingID = resp.MessageID
	}
	m.messages = append(m.messages, formatter.FormatChatResponse(resp))
	return m, nil
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, msg := range m.messages {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	prompt := formatter.StylePurple.Render("pluvio") + formatter.Dim("> ")
	b.WriteString(prompt)
	b.WriteString(m.input.View())
	return b.String()
}

func isAffirmative(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "yeah", "yep", "confirm", "ok", "okay", "sure", "do it":
		return true
	}
	return false
}

func isNegative(s string) bool {
	switch strings.ToLower(s) {
	case "n", "no", "nope", "cancel", "stop", "never mind", "nevermind":
		return true
	}
	return false
}
