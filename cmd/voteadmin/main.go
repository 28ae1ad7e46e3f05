package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tokenvote/internal/client/cli"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.RootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "voteadmin:", err)
		stop()
		os.Exit(1)
	}

}
