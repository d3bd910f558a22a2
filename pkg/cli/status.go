package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/openshift-assisted/wizard-gate/pkg/gate"
	"github.com/openshift-assisted/wizard-gate/pkg/header"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
)

// exitNotReady is returned by --fail-on-not-ready when the step cannot be left.
const exitNotReady = 3

// stepResultDocument is a StepResult with type information.
type stepResultDocument struct {
	header.Header   `json:",inline" yaml:",inline"`
	gate.StepResult `json:",inline" yaml:",inline"`
}

func newStepResultDocument(res gate.StepResult, clusterID string) *stepResultDocument {
	doc := &stepResultDocument{StepResult: res}
	doc.Set(header.KindStepResult)
	if clusterID != "" {
		doc.Metadata["cluster-id"] = clusterID
	}
	return doc
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Evaluate whether a wizard step is ready.",
		Description: `Evaluate one wizard step against the cluster and host validations.

The verdict is one of ready, not-ready or pending. Findings explain every
blocking validation, and soft failures are reported without blocking.

Examples:

  # Evaluate the host discovery step of a cluster document
  wizgate status --cluster cluster.json --step host-discovery

  # Only consider the hosts, reading the cluster from a ConfigMap
  wizgate status -c cm://assisted/cluster-01 --step storage --hosts-only

  # Use in scripts: exit code 3 when the step is not ready
  wizgate status -c cluster.yaml --step networking --fail-on-not-ready`,
		Flags: []cli.Flag{
			clusterFlag(true),
			&cli.StringFlag{
				Name:     "step",
				Aliases:  []string{"s"},
				Usage:    "Wizard step to evaluate (see 'wizgate steps')",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "hosts-only",
				Usage: "Evaluate only the host side of the step",
			},
			&cli.BoolFlag{
				Name:  "fail-on-not-ready",
				Usage: "Exit with code 3 when the step is not ready",
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

			step := stepmap.StepID(cmd.String("step"))
			var res gate.StepResult
			if cmd.Bool("hosts-only") {
				res, err = g.EvaluateHosts(step, cluster.Hosts)
			} else {
				res, err = g.Evaluate(step, *cluster, cluster.Hosts)
			}
			if err != nil {
				return err
			}

			slog.Debug("step evaluated",
				"step", res.Step,
				"verdict", res.Verdict,
				"findings", len(res.Findings))

			if err := writeOutput(ctx, cmd, newStepResultDocument(res, cluster.ID)); err != nil {
				return err
			}

			if cmd.Bool("fail-on-not-ready") && !res.CanNext() {
				return cli.Exit(fmt.Sprintf("step %s is %s", res.Step, res.Verdict), exitNotReady)
			}
			return nil
		},
	}
}
