package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/confgen/cli"
	"github.com/ardnew/confgen/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		) // conf errors carry their attributes via LogValue
		os.Exit(1)
	}
}
