package main

import (
	"os"

	"github.com/vikasmahi-dev/azure-vm-snapshot-tool/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
