package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

var (
	Version = "develop"
	Tag     = ""
)

func main() {
	err := Execute(os.Args, afero.NewOsFs())
	if err != nil {
		fmt.Fprintln(os.Stderr, "roster:", err)
		os.Exit(1)
	}
}
