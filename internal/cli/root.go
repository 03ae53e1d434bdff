package cli

import (
	"pluvio/internal/actuation"
	"pluvio/internal/service"

	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Chat      service.ChatService
	Plans     service.PlanService
	Proactive service.ProactiveService

	// Controller is used directly only by the status command; every other
	// actuation goes through the chat pipeline.
	Controller actuation.Controller

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "pluvio" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pluvio",
		Short: "Conversational irrigation controller",
	}

	root.AddCommand(
		newChatCmd(app),
		newAskCmd(app),
		newPlanCmd(app),
		newStatusCmd(app),
		newGenerateCmd(app),
		newEvaluateCmd(app),
	)

	return root
}
