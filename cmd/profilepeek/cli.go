package main

import "time"

// CLI defines the command-line interface structure for Kong. Every flag
// can also be set through a PROFILEPEEK_* environment variable.
type CLI struct {
	Addr                string        `default:":8080" env:"PROFILEPEEK_ADDR" help:"HTTP listen address"`
	TTL                 time.Duration `default:"300s" env:"PROFILEPEEK_TTL" help:"Cache entry lifetime"`
	QueueSize           int           `default:"10" env:"PROFILEPEEK_QUEUE_SIZE" help:"Concurrent extraction limit"`
	Rate                float64       `default:"1" env:"PROFILEPEEK_RATE" help:"Requests per second per host"`
	LargeNumberFallback bool          `env:"PROFILEPEEK_LARGE_NUMBER_FALLBACK" help:"Guess the count from large numbers in the page source when no labeled count is found"`
	Debug               bool          `env:"PROFILEPEEK_DEBUG" help:"Enable debug logging"`
}
