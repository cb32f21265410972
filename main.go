package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/fiobank/cmd/info"
	"fjacquet/fiobank/cmd/last"
	"fjacquet/fiobank/cmd/period"
	"fjacquet/fiobank/cmd/root"
	"fjacquet/fiobank/cmd/statement"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(info.Cmd)
	root.Cmd.AddCommand(period.Cmd)
	root.Cmd.AddCommand(statement.Cmd)
	root.Cmd.AddCommand(last.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
