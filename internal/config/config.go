package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL       = "http://localhost:8080/api/v1"
	DefaultPollInterval = 10 * time.Second
	DefaultFeedWindow   = 5 * time.Minute
	DefaultFeedLimit    = 10
	DefaultPageSize     = 20
)

type Config struct {
	apiURL         string
	pageSize       int
	pollInterval   time.Duration
	feedWindow     time.Duration
	feedLimit      int
	requestTimeout time.Duration
	dbPath         string
	logLevel       string
	logFormat      string
	logFile        string
	otelEndpoint   string
	sessionID      string
	mu             sync.RWMutex
}

var (
	instance *Config
	once     sync.Once
)

// GetConfig returns the process wide configuration
func GetConfig() *Config {
	once.Do(func() {
		instance = &Config{
			pageSize:     DefaultPageSize,
			pollInterval: DefaultPollInterval,
			feedWindow:   DefaultFeedWindow,
			feedLimit:    DefaultFeedLimit,
			logLevel:     "info",
			logFormat:    "text",
			sessionID:    uuid.New().String(),
		}
	})
	return instance
}

// Parse loads .env, then reads flags whose defaults come from MERCHDASH_*
// environment variables.
func (c *Config) Parse() error {
	return c.ParseArgs(os.Args[1:])
}

func (c *Config) ParseArgs(args []string) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	fs := flag.NewFlagSet("merchdash", flag.ContinueOnError)
	apiURL := fs.String("api-url", env("MERCHDASH_API_URL", ""), "Base URL of the merchant analytics API")
	pageSize := fs.Int("page-size", envInt("MERCHDASH_PAGE_SIZE", DefaultPageSize), "Transactions per page")
	pollInterval := fs.Duration("poll-interval", envDuration("MERCHDASH_POLL_INTERVAL", DefaultPollInterval), "Real-time feed polling interval")
	feedWindow := fs.Duration("feed-window", envDuration("MERCHDASH_FEED_WINDOW", DefaultFeedWindow), "How far back the real-time feed looks")
	feedLimit := fs.Int("feed-limit", envInt("MERCHDASH_FEED_LIMIT", DefaultFeedLimit), "Rows per real-time feed poll")
	requestTimeout := fs.Duration("request-timeout", envDuration("MERCHDASH_REQUEST_TIMEOUT", 0), "Per request timeout (0 disables)")
	dbPath := fs.String("db-path", env("MERCHDASH_DB_PATH", ""), "SQLite file for the session request log")
	logLevel := fs.String("log-level", env("MERCHDASH_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", env("MERCHDASH_LOG_FORMAT", "text"), "Log format (text, json)")
	logFile := fs.String("log-file", env("MERCHDASH_LOG_FILE", ""), "Write logs to this file instead of stderr")
	otelEndpoint := fs.String("otel-endpoint", env("OTEL_EXPORTER_OTLP_ENDPOINT", ""), "OTLP/HTTP trace endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	c.SetAPIURL(*apiURL)
	c.SetPageSize(*pageSize)
	c.SetPollInterval(*pollInterval)
	c.SetFeedWindow(*feedWindow)
	c.SetFeedLimit(*feedLimit)
	c.SetRequestTimeout(*requestTimeout)
	c.SetDbPath(*dbPath)
	c.SetLogLevel(*logLevel)
	c.SetLogFormat(*logFormat)
	c.SetLogFile(*logFile)
	c.SetOtelEndpoint(*otelEndpoint)
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(env(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(env(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func (c *Config) GetAPIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiURL
}

// SetAPIURL ignores empty values so collected arguments never clear flags
func (c *Config) SetAPIURL(u string) {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiURL = u
}

func (c *Config) GetPageSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pageSize
}

func (c *Config) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pageSize = n
}

func (c *Config) GetPollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pollInterval
}

func (c *Config) SetPollInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pollInterval = d
}

func (c *Config) GetFeedWindow() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.feedWindow
}

func (c *Config) SetFeedWindow(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feedWindow = d
}

func (c *Config) GetFeedLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.feedLimit
}

func (c *Config) SetFeedLimit(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feedLimit = n
}

func (c *Config) GetRequestTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requestTimeout
}

// SetRequestTimeout accepts 0, which disables the timeout
func (c *Config) SetRequestTimeout(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestTimeout = d
}

func (c *Config) GetDbPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dbPath
}

func (c *Config) SetDbPath(p string) {
	if p == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dbPath = p
}

func (c *Config) GetLogLevel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logLevel
}

func (c *Config) SetLogLevel(l string) {
	if l == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logLevel = l
}

func (c *Config) GetLogFormat() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logFormat
}

func (c *Config) SetLogFormat(f string) {
	if f == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logFormat = f
}

func (c *Config) GetLogFile() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logFile
}

func (c *Config) SetLogFile(f string) {
	if f == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logFile = f
}

func (c *Config) GetOtelEndpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.otelEndpoint
}

func (c *Config) SetOtelEndpoint(e string) {
	if e == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.otelEndpoint = e
}

// GetSessionId identifies this run in the request log
func (c *Config) GetSessionId() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}
