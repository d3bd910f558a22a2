package main

import (
	"log"

	"github.com/openshift-assisted/wizard-gate/pkg/api"
)

func main() {
	if err := api.Serve(); err != nil {
		log.Fatal(err)
	}
}
