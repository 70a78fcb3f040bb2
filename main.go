// Idiomatic entrypoint for the Cobra CLI; delegates to the root command
// in cmd/root.go.

package main

import (
	"github.com/petalo-go/petalo/cmd"
)

func main() {
	cmd.Execute()
}
