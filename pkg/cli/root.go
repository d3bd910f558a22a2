package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/openshift-assisted/wizard-gate/pkg/logging"
	"github.com/openshift-assisted/wizard-gate/pkg/serializer"
)

const name = "wizgate"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Flag names shared by commands and helpers.
const (
	stepMapFlagName    = "step-map"
	formatFlagName     = "format"
	outputFlagName     = "output"
	kubeconfigFlagName = "kubeconfig"
	clusterFlagName    = "cluster"
)

// globalFlags returns fresh flag instances so the command tree can be built
// more than once per process.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    stepMapFlagName,
			Aliases: []string{"m"},
			Usage:   "Path to a step validation map YAML (default: embedded OCM wizard map)",
			Sources: cli.EnvVars("WIZGATE_STEP_MAP"),
		},
		&cli.StringFlag{
			Name:    formatFlagName,
			Aliases: []string{"t"},
			Value:   string(serializer.FormatYAML),
			Usage:   "Output format (json, yaml, table)",
		},
		&cli.StringFlag{
			Name:    outputFlagName,
			Aliases: []string{"o"},
			Usage:   "Output destination: file path, - for stdout, or cm://namespace/name",
		},
		kubeconfigFlag(),
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging (same as --log-level debug)",
		},
		&cli.BoolFlag{
			Name:  "log-json",
			Usage: "Write logs as JSON",
		},
	}
}

func kubeconfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    kubeconfigFlagName,
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig file used for cm:// input and output",
		Sources: cli.EnvVars("KUBECONFIG"),
	}
}

func clusterFlag(required bool) *cli.StringFlag {
	usage := "Cluster document: file path, URL, - for stdin, or cm://namespace/name"
	if !required {
		usage += " (optional)"
	}
	return &cli.StringFlag{
		Name:     clusterFlagName,
		Aliases:  []string{"c"},
		Usage:    usage,
		Required: required,
	}
}

// newRootCmd builds the wizgate command tree.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Gate OpenShift cluster installation wizard steps on validation results",
		Version:               fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		EnableShellCompletion: true,
		// Exit codes are mapped in Execute.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Description: `wizgate decides whether each step of the cluster installation wizard is
ready, not ready or pending, based on the cluster and host validation
results reported by the assisted installer.

Commands read cluster documents (JSON or YAML) from a file, a URL,
stdin (-) or a ConfigMap (cm://namespace/name), and write results
as JSON, YAML or a table.`,
		Flags:  globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logging.ParseLevel(cmd.String("log-level"))
			if cmd.Bool("debug") {
				level = slog.LevelDebug
			}
			if cmd.Bool("log-json") {
				slog.SetDefault(logging.NewStructuredLogger(os.Stderr, name, version, level))
			} else {
				logging.SetDefaultCLILogger(level)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			statusCmd(),
			reportCmd(),
			routeCmd(),
			firstStepCmd(),
			stepsCmd(),
			serveCmd(),
		},
	}
}

// Execute runs the wizgate CLI and exits the process on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitErr.ExitCode())
		}
		slog.Error("command failed", "error", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// commandLister returns the names of the top-level commands.
func commandLister() []string {
	cmds := newRootCmd().Commands
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	return names
}
