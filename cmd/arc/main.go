package main

import (
	"os"

	"github.com/ecairns22/arc/cmd/arc/commands"
)

func main() {
	os.Exit(commands.Execute())
}
