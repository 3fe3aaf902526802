// Package webhook delivers core events to an external HTTP endpoint, letting
// the surrounding pipeline react to orders, check-ins and case updates
// without the core knowing anything about its message formats.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/kritsw/attendant/agent/contract"
)

type Config struct {
	URL     string        `envconfig:"URL" split_words:"true" required:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Publisher POSTs events as JSON. It implements contract.Sink; delivery
// failures are logged and swallowed so a dead endpoint never breaks a tool
// call.
type Publisher struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewPublisher(cfg Config) (*Publisher, error) {
	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		return nil, errors.New("webhook url is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Publisher{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    strings.TrimSpace(cfg.Token),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

var _ contractx.Sink = (*Publisher)(nil)

func (p *Publisher) Emit(ctx context.Context, ev contractx.Event) {
	if err := p.post(ctx, ev); err != nil {
		log.Warn().Err(err).Str("kind", ev.Kind).Msg("webhook delivery failed")
	}
}

func (p *Publisher) post(ctx context.Context, ev contractx.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute webhook request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook http status=%d", resp.StatusCode)
	}
	return nil
}
