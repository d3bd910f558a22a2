package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

func stepsCmd() *cli.Command {
	return &cli.Command{
		Name:  "steps",
		Usage: "Print the effective step validation map.",
		Description: `Print the step validation map used by the other commands.

Without --step-map this is the embedded OCM wizard map, which makes the
output a starting point for a custom map.

Examples:

  wizgate steps
  wizgate steps --format json
  wizgate steps -o my-wizard.yaml`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			m, err := loadStepMap(cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, m.Document())
		},
	}
}
