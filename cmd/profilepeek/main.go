package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/profilepeek/profilepeek"
	"github.com/profilepeek/profilepeek/goquery"
	peekhttp "github.com/profilepeek/profilepeek/http"
	"github.com/profilepeek/profilepeek/memcache"
	"github.com/profilepeek/profilepeek/resty"
	peekrod "github.com/profilepeek/profilepeek/rod"
	"github.com/profilepeek/profilepeek/scrape"
	peekslog "github.com/profilepeek/profilepeek/slog"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Browser process manager. Set after a successful Run.
	Browser *peekrod.Manager

	// HTTP server for end-to-end testing.
	Server *peekhttp.Server
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Server != nil {
		if err := m.Server.Close(); err != nil {
			return err
		}
	}
	if m.Browser != nil {
		return m.Browser.Close()
	}
	return nil
}

// Run executes the program with the given arguments and blocks until the
// context is canceled.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("profilepeek"),
		kong.Description("Follower count extraction service."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	browser, err := peekrod.NewManager()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	m.Browser = browser

	cache := peekslog.NewLoggingCache(memcache.New(memcache.WithTTL(cli.TTL)), logger)

	strategies := []profilepeek.Strategy{
		peekslog.NewLoggingStrategy(resty.NewProbe(), logger),
		peekslog.NewLoggingStrategy(peekrod.NewSelectorStrategy(browser), logger),
		peekslog.NewLoggingStrategy(peekrod.NewSourceStrategy(browser,
			peekrod.WithLargeNumberFallback(cli.LargeNumberFallback)), logger),
	}

	srv := peekhttp.NewServer(cli.QueueSize)
	srv.Addr = cli.Addr
	srv.Followers = &scrape.Service{
		Strategies: strategies,
		Cache:      cache,
		Limiter:    scrape.NewHostLimiter(cli.Rate),
		Host:       profilepeek.DefaultProfileHost,
		Logger:     logger,
	}
	srv.Screenshots = peekrod.NewScreenshotter(browser)
	srv.Links = goquery.NewExtractor()
	srv.Cache = cache
	srv.BrowserHealthy = browser.Healthy
	srv.Logger = logger
	m.Server = srv

	if err := srv.Open(); err != nil {
		m.Close()
		return fmt.Errorf("failed to start server: %w", err)
	}
	defer m.Close()

	logger.Info("listening", "url", srv.URL(), "queue_size", cli.QueueSize, "cache_ttl", cli.TTL)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
