package main

import (
	"github.com/openshift-assisted/wizard-gate/pkg/cli"
)

func main() {
	cli.Execute()
}
