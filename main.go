// The main package for the blogmap executable.
package main

import (
	"github.com/kitsunelab/blogmap/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
