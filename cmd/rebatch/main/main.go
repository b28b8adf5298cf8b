package main

import (
	"os"

	"github.com/arthur-debert/rebatch/cmd/rebatch"
)

func main() {
	os.Exit(rebatch.Execute())
}
