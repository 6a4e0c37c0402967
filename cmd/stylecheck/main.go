// Command stylecheck checks Word documents against an academic style guide.
package main

import (
	"os"

	"github.com/tsawler/stylecheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
