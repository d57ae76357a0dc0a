package main

import (
	"os"

	"github.com/mustafa-guler/packed-dna/cmd"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "docs" {
		makeDocs() // regenerate ./docs
		return
	}

	cmd.Execute() // initialize cobra commands
}
