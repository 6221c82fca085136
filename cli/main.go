package main

import (
	"os"

	"github.com/trebuchet-org/vdeploy/internal/cli"
	"github.com/trebuchet-org/vdeploy/internal/cli/render"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		render.RenderError(os.Stderr, err)
		os.Exit(1)
	}
}
