// Package cli implements the wizgate command-line interface.
//
// # Overview
//
// wizgate evaluates the steps of the OpenShift cluster installation wizard
// against the validation results the assisted installer reports for a
// cluster and its hosts. Every command reads a step validation map, either
// the embedded OCM wizard map or one given with --step-map.
//
// # Commands
//
// status - Evaluate a single step:
//
//	wizgate status --cluster cluster.json --step host-discovery
//	wizgate status -c cm://assisted/cluster-01 --step storage --hosts-only
//	wizgate status -c cluster.yaml --step networking --fail-on-not-ready
//
// report - Evaluate every step, in wizard order:
//
//	wizgate report --cluster cluster.json --format table
//	wizgate report -c https://assisted.example.com/clusters/c1 -o report.yaml
//
// route - Find the step where a failing validation is fixed:
//
//	wizgate route --validation has-min-memory
//	wizgate route --validation sufficient-masters-count --minimum storage
//
// first-step - Pick the step the wizard opens on:
//
//	wizgate first-step --cluster cluster.json
//	wizgate first-step --flow-state new --static-ip-view yaml
//
// steps - Print the effective step validation map:
//
//	wizgate steps --format json
//
// serve - Run the HTTP API:
//
//	wizgate serve --port 9090
//
// # Global Flags
//
//	--step-map, -m    Step validation map YAML (default: embedded)
//	--format, -t      Output format: yaml, json, table (default: yaml)
//	--output, -o      Output file, - for stdout, or cm://namespace/name
//	--kubeconfig, -k  Kubeconfig used for cm:// input and output
//	--log-level       Log level (debug, info, warn, error)
//	--debug           Enable debug logging
//	--log-json        Output logs in JSON format
//
// # Environment Variables
//
//	WIZGATE_STEP_MAP  Default for --step-map
//	KUBECONFIG        Default for --kubeconfig
//	LOG_LEVEL         Default for --log-level
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//	3  Step not ready (--fail-on-not-ready)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/openshift-assisted/wizard-gate/pkg/cli.version=1.0.0'"
package cli
