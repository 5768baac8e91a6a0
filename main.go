package main

import (
	"os"

	"github.com/scan-io-git/cachelens/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
