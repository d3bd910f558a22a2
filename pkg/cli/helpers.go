package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/openshift-assisted/wizard-gate/pkg/gate"
	"github.com/openshift-assisted/wizard-gate/pkg/serializer"
	"github.com/openshift-assisted/wizard-gate/pkg/stepmap"
	"github.com/openshift-assisted/wizard-gate/pkg/validation"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String(formatFlagName))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %v",
			outFormat, serializer.SupportedFormats())
	}
	return outFormat, nil
}

// loadStepMap returns the map named by --step-map, or the embedded one.
func loadStepMap(cmd *cli.Command) (*stepmap.Map, error) {
	path := cmd.String(stepMapFlagName)
	if path == "" {
		return stepmap.Default()
	}
	slog.Debug("loading step validation map", "path", path)
	return stepmap.LoadFile(path)
}

func loadGate(cmd *cli.Command) (*gate.Gate, error) {
	m, err := loadStepMap(cmd)
	if err != nil {
		return nil, err
	}
	return gate.New(m), nil
}

// loadCluster reads the cluster document named by flag.
func loadCluster(cmd *cli.Command, flag string) (*validation.Cluster, error) {
	uri := cmd.String(flag)
	if uri == "" {
		return nil, fmt.Errorf("--%s is required", flag)
	}
	cluster, err := serializer.FromFileWithKubeconfig[validation.Cluster](uri, cmd.String(kubeconfigFlagName))
	if err != nil {
		return nil, fmt.Errorf("failed to load cluster from %q: %w", uri, err)
	}
	slog.Debug("cluster loaded",
		"source", uri,
		"id", cluster.ID,
		"status", cluster.Status,
		"hosts", len(cluster.Hosts))
	return cluster, nil
}

// writeOutput serializes v to the destination selected by --output.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String(outputFlagName))
	if err != nil {
		return fmt.Errorf("failed to create output writer: %w", err)
	}
	if cm, ok := ser.(*serializer.ConfigMapWriter); ok {
		cm.WithKubeconfig(cmd.String(kubeconfigFlagName))
	}
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close output", "error", err)
			}
		}
	}()

	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
