package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/openshift-assisted/wizard-gate/pkg/gate"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

const flowStateNew = "new"

func firstStepCmd() *cli.Command {
	return &cli.Command{
		Name:  "first-step",
		Usage: "Pick the step the wizard opens on.",
		Description: `Pick the wizard step to open for a cluster.

Newly created clusters open on the operators step, incomplete static
network configurations open their editor, ready clusters open on review,
and clusters waiting for input open where the first failing host
validation is fixed.

Examples:

  wizgate first-step --cluster cluster.json
  wizgate first-step --flow-state new --static-ip-view yaml
  wizgate first-step --cluster-status ready --custom-manifests-pending`,
		Flags: []cli.Flag{
			clusterFlag(false),
			&cli.StringFlag{
				Name:  "cluster-status",
				Usage: "Cluster status, used when --cluster is not set",
			},
			&cli.StringFlag{
				Name:  "flow-state",
				Usage: "Wizard flow state; 'new' right after the cluster is created",
			},
			&cli.StringFlag{
				Name:  "static-ip-view",
				Usage: "Static network configuration editor (yaml, form); empty for DHCP",
			},
			&cli.BoolFlag{
				Name:  "static-ip-complete",
				Usage: "The static network configuration is complete",
			},
			&cli.BoolFlag{
				Name:  "custom-manifests-pending",
				Usage: "Custom manifests are enabled but not filled in",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in, err := firstStepInput(cmd)
			if err != nil {
				return err
			}
			g, err := loadGate(cmd)
			if err != nil {
				return err
			}

			step := g.FirstStep(in)
			return writeOutput(ctx, cmd, gate.FirstStepResponse{
				Step:  step,
				Title: g.Map().Title(step),
			})
		},
	}
}

func firstStepInput(cmd *cli.Command) (gate.FirstStepInput, error) {
	var in gate.FirstStepInput

	switch state := cmd.String("flow-state"); state {
	case "":
	case flowStateNew:
		in.NewCluster = true
	default:
		return in, fmt.Errorf("unknown flow state: %q, valid states are: %s", state, flowStateNew)
	}

	switch view := gate.StaticIPView(cmd.String("static-ip-view")); view {
	case "":
		if cmd.Bool("static-ip-complete") {
			return in, fmt.Errorf("--static-ip-complete requires --static-ip-view")
		}
	case gate.StaticIPViewYAML, gate.StaticIPViewForm:
		in.StaticIP = &gate.StaticIPInfo{View: view, IsComplete: cmd.Bool("static-ip-complete")}
	default:
		return in, fmt.Errorf("unknown static IP view: %q, valid views are: %s, %s",
			view, gate.StaticIPViewYAML, gate.StaticIPViewForm)
	}

	in.CustomManifestsPending = cmd.Bool("custom-manifests-pending")

	if cmd.String(clusterFlagName) != "" {
		cluster, err := loadCluster(cmd, clusterFlagName)
		if err != nil {
			return in, err
		}
		in.ClusterStatus = cluster.Status
		in.Hosts = cluster.Hosts
	} else {
		in.ClusterStatus = validation.ClusterStatus(cmd.String("cluster-status"))
	}
	return in, nil
}
