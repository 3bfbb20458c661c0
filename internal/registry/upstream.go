package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type request = resty.Request

type ProviderConfig struct {
	BaseURL string
	Key     string
	Secret  string
	Timeout time.Duration
	Interval time.Duration
}

type upstream struct {
	client  *resty.Client
	limiter *rate.Limiter
}

func newUpstream(cfg ProviderConfig) *upstream {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	limit := rate.Inf
	if cfg.Interval > 0 {
		limit = rate.Every(cfg.Interval)
	}
	return &upstream{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// do возвращает тело ответа 2xx, 404 превращается в ErrNotFound
func (u *upstream) do(ctx context.Context, method, path string, build func(r *request)) ([]byte, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := u.client.R().SetContext(ctx)
	if build != nil {
		build(req)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.IsError():
		return nil, fmt.Errorf("unexpected status %d: %q", resp.StatusCode(), excerpt(resp.Body()))
	}
	return resp.Body(), nil
}
