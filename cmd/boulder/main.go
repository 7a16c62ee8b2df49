// Command boulder generates builders and generators for Go struct types
// annotated with //boulder:buildable and //boulder:generatable.
//
//	//go:generate go run github.com/syssam/boulder/cmd/boulder generate .
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := RootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
