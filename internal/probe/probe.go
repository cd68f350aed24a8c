// Package probe checks that a results-ingest endpoint is up before a CI
// job ships report payloads to it.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// minimalPayload is the smallest well-formed protobuf message the ingest
// endpoint accepts: field 1, varint 0.
var minimalPayload = []byte{0x0A, 0x00}

// Result captures what the endpoint answered.
type Result struct {
	StatusCode  int
	ContentType string
	BodyBytes   int
}

// OK reports whether the endpoint accepted the payload.
func (r Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Prober sends a minimal ingest payload to a target endpoint.
type Prober struct {
	Target string
	Client *http.Client
}

// New creates a Prober with a short per-request timeout.
func New(target string) *Prober {
	return &Prober{
		Target: target,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// WaitReachable polls the target until any HTTP response arrives or the
// context expires. A 4xx or 5xx still means the endpoint is up.
func (p *Prober) WaitReachable(ctx context.Context) error {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Target, nil)
		if err != nil {
			return fmt.Errorf("failed to create probe request: %w", err)
		}
		resp, err := p.Client.Do(req)
		if err == nil {
			resp.Body.Close()
			return nil
		}
		slog.Debug("endpoint not reachable yet", "target", p.Target, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("endpoint %s not reachable: %w", p.Target, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Send posts the minimal payload and reports the endpoint's answer.
func (p *Prober) Send(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Target,
		bytes.NewReader(minimalPayload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create probe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-protobuf")

	resp, err := p.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("probe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read probe response: %w", err)
	}

	return Result{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		BodyBytes:   len(body),
	}, nil
}
