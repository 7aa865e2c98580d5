// Package resty provides the direct API probe, the cheapest extraction
// strategy: time-boxed JSON requests against candidate profile-stats
// endpoints, tried before any browser rendering.
package resty

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/profilepeek/profilepeek"
)

// DefaultProbeTimeout bounds each endpoint request.
const DefaultProbeTimeout = 10 * time.Second

// DefaultEndpoints are candidate JSON endpoints; %s is replaced by the
// normalized username. None of these are official APIs and any of them
// may stop answering at any time.
var DefaultEndpoints = []string{
	"https://www.tiktok.com/api/user/detail/?uniqueId=%s",
	"https://www.tiktok.com/node/share/user/@%s",
}

// keyPaths are the known locations of a follower count in endpoint
// responses, tried in order per response.
var keyPaths = [][]string{
	{"userInfo", "stats", "followerCount"},
	{"data", "follower_count"},
	{"user", "follower_count"},
}

// Ensure Probe implements profilepeek.Strategy at compile time.
var _ profilepeek.Strategy = (*Probe)(nil)

// Probe extracts a follower count by querying candidate API endpoints
// directly, without rendering anything.
type Probe struct {
	client    *resty.Client
	endpoints []string
}

// ProbeOption configures a Probe.
type ProbeOption func(*Probe)

// WithEndpoints overrides the endpoint templates. Defaults to
// DefaultEndpoints.
func WithEndpoints(endpoints []string) ProbeOption {
	return func(p *Probe) {
		p.endpoints = endpoints
	}
}

// WithTimeout bounds each endpoint request. Defaults to
// DefaultProbeTimeout.
func WithTimeout(d time.Duration) ProbeOption {
	return func(p *Probe) {
		p.client.SetTimeout(d)
	}
}

// NewProbe creates a Probe with its own HTTP client.
func NewProbe(opts ...ProbeOption) *Probe {
	client := resty.New().
		SetTimeout(DefaultProbeTimeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36").
		SetHeader("Accept", "application/json")

	p := &Probe{
		client:    client,
		endpoints: DefaultEndpoints,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name identifies the strategy in logs.
func (p *Probe) Name() string { return "api" }

// Extract queries each endpoint in order and returns the first numeric
// follower count found at a known key path. Endpoint failures of any
// kind move on to the next endpoint.
func (p *Probe) Extract(ctx context.Context, username string) (string, error) {
	for _, endpoint := range p.endpoints {
		resp, err := p.client.R().
			SetContext(ctx).
			Get(fmt.Sprintf(endpoint, username))
		if err != nil || resp.StatusCode() != 200 {
			continue
		}

		var payload map[string]any
		if err := json.Unmarshal(resp.Body(), &payload); err != nil {
			continue
		}

		for _, path := range keyPaths {
			if raw, ok := lookupPath(payload, path); ok {
				return raw, nil
			}
		}
	}

	return "", profilepeek.Errorf(profilepeek.ENOTFOUND, "no api endpoint returned a follower count for %q", username)
}

// lookupPath walks nested JSON objects along the path and returns the
// leaf as a digit string. Only integral numbers and digit strings count
// as a value; anything else is a miss.
func lookupPath(payload map[string]any, path []string) (string, bool) {
	var current any = payload
	for _, field := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = obj[field]
		if !ok {
			return "", false
		}
	}

	switch v := current.(type) {
	case float64:
		if v == math.Trunc(v) && v >= 0 {
			return strconv.FormatInt(int64(v), 10), true
		}
	case string:
		if _, err := strconv.ParseUint(v, 10, 64); err == nil {
			return v, true
		}
	}
	return "", false
}
