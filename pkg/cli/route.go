package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/openshift-assisted/wizard-gate/pkg/gate"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

func routeCmd() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Find the step where a failing validation is fixed.",
		Description: `Find the wizard step a user is sent to when a validation fails.

With --minimum the search starts at that step and only steps at or after
it are considered. Without it, the first step claiming the validation
wins, and the group hints are used for validations no step names.

Examples:

  wizgate route --validation has-min-memory
  wizgate route --validation sufficient-masters-count --minimum storage
  wizgate route --validation some-new-check --host-group network`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "validation",
				Usage:    "Validation id",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "minimum",
				Usage: "Earliest step to consider",
			},
			&cli.StringFlag{
				Name:  "host-group",
				Usage: "Host validation group of the id, used when no step names it",
			},
			&cli.StringFlag{
				Name:  "cluster-group",
				Usage: "Cluster validation group of the id, used when no step names it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			g, err := loadGate(cmd)
			if err != nil {
				return err
			}

			resp := gate.RouteResponse{
				ValidationID: validation.ID(cmd.String("validation")),
				MinimumStep:  stepmap.StepID(cmd.String("minimum")),
			}
			if resp.MinimumStep != "" {
				resp.Step, resp.Found, err = g.FindStepForFailingValidation(resp.ValidationID, resp.MinimumStep)
				if err != nil {
					return err
				}
			} else {
				resp.Step, resp.Found = g.FindValidationFixStep(gate.ValidationRef{
					ID:           resp.ValidationID,
					HostGroup:    validation.Group(cmd.String("host-group")),
					ClusterGroup: validation.Group(cmd.String("cluster-group")),
				})
			}

			return writeOutput(ctx, cmd, resp)
		},
	}
}
