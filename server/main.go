package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merchdash/internal/demo"
	"merchdash/internal/logging"
)

const (
	defaultPort = 8080
	defaultHost = "localhost"
)

func main() {
	var host string
	var port int
	var merchants int
	var days int
	var seed int64
	var tick time.Duration
	var logLevel string

	flag.StringVar(&host, "host", defaultHost, "Server host")
	flag.IntVar(&port, "port", defaultPort, "Server port")
	flag.IntVar(&merchants, "merchants", 24, "Number of generated merchants")
	flag.IntVar(&days, "days", 400, "Days of generated transaction history")
	flag.Int64Var(&seed, "seed", 1, "Seed for the generated data")
	flag.DurationVar(&tick, "tick", 3*time.Second, "How often a new transaction arrives (0 disables)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level")
	flag.Parse()

	if merchants <= 0 {
		log.Fatalf("merchants must be positive, got %d", merchants)
	}

	logger, closer, err := logging.Setup(logLevel, "text", "")
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer closer.Close()

	store := demo.Generate(seed, time.Now().UTC(), merchants, days)
	server := demo.NewServer(store, logger)

	addr := fmt.Sprintf("%s:%d", host, port)
	if err := server.Start(addr, tick); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Printf("Demo analytics API on http://%s%s\n", server.Addr(), demo.BasePath)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nStopping server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Warn("shutdown")
	}
	fmt.Println("Server stopped")
}
