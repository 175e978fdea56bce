package main

import (
	"os"

	"github.com/arthur-debert/drupalctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
