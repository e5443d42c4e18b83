// Command qtsim simulates quantum teleportation runs on a discrete-event
// timeline.
package main

import (
	"log"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/qtsim/config"
)

func main() {
	e, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := newRootCmd(e).Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
