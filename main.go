// The main package for the progressreport executable.
package main

import (
	"github.com/Meshotron2/monitor/cmd"
)

// main defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
