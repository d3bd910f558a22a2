// Package gate decides whether a wizard step may be left, where the wizard
// should land, and how each step's state is presented.
//
// A Gate evaluates a cluster snapshot and its hosts against a stepmap.Map:
//
//	m, _ := stepmap.Default()
//	g := gate.New(m)
//	verdict, err := g.StepStatus("host-discovery", cluster, cluster.Hosts)
//	if verdict.CanNext() {
//		// enable "Next"
//	}
//
// Verdicts are three-valued. VerdictReady is the only one that permits
// navigation; VerdictPending is transient and callers may poll for a new
// snapshot; VerdictNotReady blocks. When both a failing validation and a
// host status that is not yet settled are present, the failure wins.
//
// Evaluation is a pure function of the snapshot and the map. Malformed
// validationsInfo, unknown validation IDs and unknown host statuses never
// cause errors. The only error is a step that has no entry in the map.
//
// Soft validations are taken from the whole wizard: an ID listed as soft on
// any step never blocks any step.
package gate
