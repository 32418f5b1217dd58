package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"bitbucket.org/cover42/agsctl/cmd"
	"bitbucket.org/cover42/agsctl/internal/legacy"
	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args, _, err := legacy.Translate(os.Args[1:], cmd.CommandNames())
	if err != nil {
		fmt.Println(color.RedString("\nInput error: %v", err))
		args = []string{"--help"}
		_ = cmd.Execute(ctx, args)
		stop()
		os.Exit(cmd.ExitUsage)
	}

	err = cmd.Execute(ctx, args)
	stop()
	os.Exit(cmd.ExitCode(err))
}
