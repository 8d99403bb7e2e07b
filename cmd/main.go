package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merchdash/internal/cli"
	cmd "merchdash/internal/command"
	cfg "merchdash/internal/config"
	"merchdash/internal/logging"
	"merchdash/internal/telemetry"
)

func main() {
	err := cfg.GetConfig().Parse()
	if err != nil {
		fmt.Printf("Error parsing config: %s\n", err)
		os.Exit(1)
	}

	conf := cfg.GetConfig()
	logger, logCloser, err := logging.Setup(conf.GetLogLevel(), conf.GetLogFormat(), conf.GetLogFile())
	if err != nil {
		fmt.Printf("Error configuring logging: %s\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	shutdown, err := telemetry.InitTracer(context.Background(), telemetry.ServiceName, conf.GetOtelEndpoint())
	if err != nil {
		logger.WithError(err).Warn("tracing disabled")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.WithError(err).Warn("failed to flush traces")
		}
	}()

	cli := cli.NewCLI(logger)

	// Stop feed workers and flush the request log on kill and interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cli.Close()
		fmt.Println("Exiting merchdash")
		os.Exit(0)
	}()

	cli.ClearTerminal()

	if conf.GetAPIURL() == "" {
		cli.AddCommand(&cmd.CollectArgsCommand{})
	}

	err = cli.Run()
	cli.Close()
	if err != nil {
		logger.WithError(err).Error("run failed")
		fmt.Printf("Error running merchdash: %s\n", err)
	}
}
