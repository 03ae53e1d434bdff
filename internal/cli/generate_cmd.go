package cli

import (
	"context"
	"fmt"

	"pluvio/internal/cli/formatter"

	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Synthesize a fresh 7-day watering plan",
		Long:  "Replaces the active plan with a newly generated one based on the current forecast.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := app.Plans.Regenerate(ctx, ""); err != nil {
				return err
			}
			view, err := app.Plans.Current(ctx)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPlan(view))
			return nil
		},
	}
}

func newEvaluateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate",
		Short: "Check whether the forecast has shifted since the plan was made",
		RunE: func(cmd *cobra.Command, args []string) error {
			proposal, err := app.Proactive.Evaluate(context.Background())
			if err != nil {
				return err
			}
			if proposal == nil || proposal.Proposed == nil {
				fmt.Println(formatter.Dim("Forecast is close enough to what the plan assumed. No change proposed."))
				return nil
			}
			fmt.Println(formatter.StyleYellow.Render("The forecast has shifted:"))
			for _, reason := range proposal.Assessment.Reasons {
				fmt.Printf("  • %s\n", reason.Message)
			}
			fmt.Println()
			fmt.Println("An adjusted plan is ready. Review it with `pluvio plan`, then `pluvio plan accept` or `pluvio plan decline`.")
			return nil
		},
	}
}
