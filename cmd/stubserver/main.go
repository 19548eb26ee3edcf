package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aprahadian/flightbook/config"
	"github.com/aprahadian/flightbook/internal/bootstrap"
	"github.com/aprahadian/flightbook/internal/stubserver"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	addr := cfg.Stub.Address
	if addr == "" {
		addr = ":5000"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("stub booking service listening on %s", addr)
	if err := bootstrap.Run(ctx, addr, stubserver.New().Handler()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
