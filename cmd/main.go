package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	cli "holoscope/internal/api"
)

const version = "4.0.0"

func main() {
	root := cli.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
