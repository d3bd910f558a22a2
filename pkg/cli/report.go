package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Evaluate every wizard step for a cluster.",
		Description: `Evaluate all steps of the wizard in order and summarize the verdicts.

The report also names the first incomplete step, where failing host
validations are fixed, and the step the wizard would open on.

Examples:

  # Report as YAML
  wizgate report --cluster cluster.json

  # Compact table for a terminal
  wizgate report -c https://assisted.example.com/clusters/c1 --format table

  # Store the report next to the cluster document
  wizgate report -c cm://assisted/cluster-01 -o cm://assisted/cluster-01-report`,
		Flags: []cli.Flag{
			clusterFlag(true),
			&cli.BoolFlag{
				Name:  "fail-on-not-ready",
				Usage: "Exit with code 3 when any step is not ready",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := loadGate(cmd)
			if err != nil {
				return err
			}
			cluster, err := loadCluster(cmd, clusterFlagName)
			if err != nil {
				return err
			}

			report, err := g.Report(*cluster)
			if err != nil {
				return err
			}
			if err := writeOutput(ctx, cmd, report); err != nil {
				return err
			}

			if cmd.Bool("fail-on-not-ready") && report.Summary.Ready != report.Summary.Total {
				return cli.Exit(fmt.Sprintf("%d of %d steps are not ready",
					report.Summary.Total-report.Summary.Ready, report.Summary.Total), exitNotReady)
			}
			return nil
		},
	}
}
