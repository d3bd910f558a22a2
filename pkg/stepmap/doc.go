// Package stepmap holds the Step Validation Map: the per-wizard table that
// says which cluster and host validations gate each wizard step.
//
// A map is authored as YAML:
//
//	kind: WizardStepsValidationMap
//	apiVersion: wizardstepsvalidationmap.wizgate.openshift.io/v1
//	name: ocm-cluster-wizard
//	order: [cluster-details, host-discovery, review]
//	landing:
//	  fallback: cluster-details
//	catalog:
//	  host:
//	    hardware: [has-min-cpu-cores, has-min-memory]
//	steps:
//	  cluster-details:
//	    cluster:
//	      validationIds: [pull-secret-set]
//	  host-discovery:
//	    host:
//	      allowedStatuses: [known, disabled]
//	      groups: [hardware]
//	    softValidationIds: [no-skip-missing-disk]
//	  review: {}
//
// The order is the wizard's declared step sequence. Every step in the order
// must have an entry and every entry must appear in the order; a map that
// breaks this is rejected when loaded. The catalog lists the known members of
// each validation group and is used when routing a failing validation to the
// step that requires its group.
//
// A Map is immutable once built and safe for concurrent use. Accessors return
// copies. Default returns the map for the OCM cluster installation wizard,
// embedded in the binary and parsed once.
package stepmap
