package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/openshift-assisted/wizard-gate/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the wizgate API server.",
		Description: `Serve the gate over HTTP until interrupted.

Endpoints:

  POST /v1/status?step=ID   evaluate one step for a posted cluster
  POST /v1/report           evaluate every step
  POST /v1/first-step       pick the landing step
  GET  /v1/route            route a failing validation
  GET  /v1/steps            effective step validation map

The server also exposes /health, /ready and /metrics. PORT, RATE_LIMIT
and RATE_LIMIT_BURST are read from the environment or a .env file.

Examples:

  wizgate serve
  wizgate serve --port 9090 --step-map my-wizard.yaml`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default: PORT or 8080)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Run(ctx, api.Options{
				StepMapPath: cmd.String(stepMapFlagName),
				Port:        int(cmd.Int("port")),
			})
		},
	}
}
