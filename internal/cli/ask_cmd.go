package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"pluvio/internal/cli/formatter"
	"pluvio/internal/conversation"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   `ask "<natural language>"`,
		Short: "Send one message to the irrigation assistant",
		Long:  "One-shot chat turn: commands that need confirmation prompt inline.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			session := conversation.DefaultSessionID

			resp, err := app.Chat.HandleMessage(ctx, session, args[0])
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatChatResponse(resp))

			if !resp.RequiresConfirmation {
				return nil
			}

			confirmed := yes
			if !confirmed {
				confirmed, err = confirmPrompt(app, resp.ConfirmationMessage)
				if err != nil {
					return err
				}
			}

			if !confirmed {
				cancel, err := app.Chat.CancelPending(ctx, session, resp.MessageID)
				if err != nil {
					return err
				}
				fmt.Println(formatter.FormatChatResponse(cancel))
				return nil
			}

			done, err := app.Chat.ConfirmPending(ctx, session, resp.MessageID)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatChatResponse(done))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm without prompting")
	return cmd
}

// confirmPrompt asks the user to confirm a parked command. Interactive
// terminals get a huh form; pipes fall back to a plain y/N line.
func confirmPrompt(app *App, message string) (bool, error) {
	if app.IsInteractive == nil || !app.IsInteractive() {
		fmt.Print("Confirm? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		text, _ := reader.ReadString('\n')
		text = strings.TrimSpace(strings.ToLower(text))
		return text == "y" || text == "yes", nil
	}

	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
