package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sandgrund/internal/planner"
	"sandgrund/pkg/client"
)

func main() {
	connect := func(baseURL, token string, notify func(string)) planner.API {
		return client.NewFetcher(client.NewHttpClient(baseURL, token), client.NotifierFunc(notify))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := planner.New(planner.NewStore(), connect, nil).App()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
