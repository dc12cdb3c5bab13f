package client

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"visitor-cli/internal/session"
)

type VisitorClient struct {
	HTTP   *resty.Client
	Config ClientConfig
	store  session.Store
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// OnUnauthorized runs after a 401 has cleared the session.
	OnUnauthorized func()
}

// New builds a client that replays the token held by store on every request.
func New(cfg ClientConfig, store session.Store) *VisitorClient {
	if store == nil {
		store = session.NewMemoryStore()
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	c := &VisitorClient{
		HTTP:   r,
		Config: cfg,
		store:  store,
	}

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		if token := c.store.Load().Token; token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})
	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized {
			c.expireSession()
		}
		return nil
	})

	return c
}

// Session returns the stored session.
func (c *VisitorClient) Session() session.Session {
	return c.store.Load()
}

// Logout forgets the stored session. The backend keeps no logout state.
func (c *VisitorClient) Logout() error {
	return c.store.Clear()
}

func (c *VisitorClient) expireSession() {
	_ = c.store.Clear()
	if c.Config.OnUnauthorized != nil {
		c.Config.OnUnauthorized()
	}
}

func (c *VisitorClient) request(ctx context.Context) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.HTTP.R().SetContext(ctx)
}
