package cli

import (
	"context"
	"fmt"

	"pluvio/internal/cli/formatter"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show controller status",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Controller.Status(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatStatus(snap))
			return nil
		},
	}
}
