package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"sync"
	"time"

	"merchdash/internal/api"
	cmd "merchdash/internal/command"
	cfg "merchdash/internal/config"
	"merchdash/internal/db"
	"merchdash/internal/logging"
	"merchdash/internal/metrics"
	"merchdash/internal/view"

	"github.com/sirupsen/logrus"
)

var Version string = "v0.1.0"

const (
	logBufferSize    = 1000
	logBatchSize     = 50
	logFlushInterval = time.Second
)

type CLI struct {
	commands map[string]cmd.Command
	client   *api.Client
	factory  *cmd.Factory

	out          io.Writer
	view         *view.Renderer
	requestStats *metrics.RequestStats
	fetchStats   *metrics.FetchStats
	logger       *logrus.Logger
	asyncLogger  *db.AsyncLogger

	ctx    context.Context
	cancel context.CancelFunc

	// Background worker state
	workers map[string]*workerInfo
	order   []string
	mu      sync.Mutex
}

// NewCLI creates a CLI writing to stdout. A nil logger discards log output.
func NewCLI(logger *logrus.Logger) *CLI {
	if logger == nil {
		logger = logging.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &CLI{
		commands:     make(map[string]cmd.Command),
		out:          os.Stdout,
		view:         view.NewRenderer(os.Stdout),
		requestStats: metrics.NewRequestStats(),
		fetchStats:   metrics.NewFetchStats(),
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		workers:      make(map[string]*workerInfo),
	}
}

func (cli *CLI) AddCommand(command cmd.Command) {
	if _, exists := cli.commands[command.Name()]; exists {
		log.Fatalf("Command '%s' is already registered", command.Name())
	}
	cli.commands[command.Name()] = command
}

func (cli *CLI) Run() error {
	if collectArgsCommand, ok := cli.commands["collect-args"]; ok {
		err := collectArgsCommand.Execute()
		if err != nil {
			return err
		}
	}
	err := cli.InitClient()
	if err != nil {
		return err
	}

	cli.registerCommands()
	return cli.runWithHistory()
}

func (cli *CLI) registerCommands() {
	cli.factory = cmd.NewFactory(cli.ctx, cli.client, cli.view, cli.fetchStats, cli.logger, cli)
	for _, c := range cli.factory.Commands() {
		cli.AddCommand(c)
	}
}

// InitClient opens the request log, when configured, and builds the API
// client every command shares.
func (cli *CLI) InitClient() error {
	conf := cfg.GetConfig()

	opts := []api.Option{
		api.WithTimeout(conf.GetRequestTimeout()),
		api.WithLogger(cli.logger),
		api.WithObserver(cli.requestStats),
	}

	dbPath := conf.GetDbPath()
	if dbPath != "" {
		if err := db.InitDB(dbPath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		cli.asyncLogger = db.NewAsyncLogger(logBufferSize, logBatchSize, logFlushInterval, cli.logger)
		opts = append(opts, api.WithObserver(db.NewRecorder(conf.GetSessionId(), cli.asyncLogger, cli.logger)))
	}

	client, err := api.NewClient(conf.GetAPIURL(), opts...)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	cli.client = client

	cli.logger.WithFields(logrus.Fields{
		"api":     client.BaseURL(),
		"session": conf.GetSessionId(),
	}).Info("client initialized")
	return nil
}

func (cli *CLI) ClearTerminal() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", "cls")
	} else {
		cmd = exec.Command("clear")
	}
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to clear terminal: %v\n", err)
	}
}

// Close stops the workers, cancels in-flight requests and flushes the request log.
func (cli *CLI) Close() {
	if err := cli.StopAllWorkers(); err != nil {
		cli.logger.WithError(err).Warn("failed to stop workers")
	}
	cli.cancel()

	if cli.asyncLogger != nil {
		cli.asyncLogger.Stop()
	}

	// Close database connection
	if err := db.Close(); err != nil {
		cli.logger.WithError(err).Debug("closing database")
	}
}

func (cli *CLI) printHelp() {
	fmt.Fprintln(cli.out, "merchdash commands:")
	fmt.Fprintln(cli.out, "  help, h, ?     - Display this help message")
	fmt.Fprintln(cli.out, "  version, v     - Display version information")
	fmt.Fprintln(cli.out, "  clear, cls     - Clear terminal")
	fmt.Fprintln(cli.out, "  quit, exit     - Exit the program")
	fmt.Fprintln(cli.out, "  stats, status  - Show request and worker statistics")
	fmt.Fprintln(cli.out, "  stop-all       - Stop all background workers")
	fmt.Fprintln(cli.out, "  stop           - Stop a specific worker")
	fmt.Fprintln(cli.out, "")

	if len(cli.commands) > 0 {
		names := make([]string, 0, len(cli.commands))
		for name := range cli.commands {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(cli.out, "Available commands:")
		for _, name := range names {
			fmt.Fprintf(cli.out, "  %-14s - %s\n", name, cli.commands[name].Synopsis())
		}
	}
}

func (cli *CLI) printVersion() {
	fmt.Fprintf(cli.out, "merchdash (merchant analytics dashboard) version %s\n", Version)
}
