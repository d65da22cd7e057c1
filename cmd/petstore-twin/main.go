package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Apurer/petstore-contract-suite/internal/app/twin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := twin.Run(ctx); err != nil {
		log.Fatalf("petstore twin: %v", err)
	}
}
