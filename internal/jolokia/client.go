// Package jolokia is a minimal client for the Jolokia JMX-over-HTTP agent
// protocol. It covers exactly what a health probe needs: opening a session,
// searching MBean name patterns, and invoking zero-argument operations.
package jolokia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

// Options configures a Client.
type Options struct {
	// AgentURL is the base URL of the Jolokia agent,
	// e.g. "http://host:8778/jolokia".
	AgentURL string

	// Username and Password enable HTTP basic auth. Both must be set;
	// a one-sided pair is treated as anonymous.
	Username string
	Password string

	// Timeout bounds every request, connect included.
	Timeout time.Duration

	// CheckPeriod is the TCP keep-alive probe interval used for anonymous
	// sessions to notice a dead endpoint.
	CheckPeriod time.Duration

	// Logger for the client.
	Logger *zap.Logger
}

// DefaultOptions returns default options for the client.
func DefaultOptions() Options {
	return Options{
		Timeout:     10 * time.Second,
		CheckPeriod: 5 * time.Second,
		Logger:      zap.NewNop(),
	}
}

// Client talks to one Jolokia agent. It is not safe for concurrent use and
// is meant to live for a single probe invocation.
type Client struct {
	opts   Options
	logger *zap.Logger
	base   *url.URL
	httpc  *http.Client
}

// NewClient validates the options and builds a client. No network traffic
// happens until Connect.
func NewClient(opts Options) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.CheckPeriod == 0 {
		opts.CheckPeriod = DefaultOptions().CheckPeriod
	}
	if opts.Username == "" || opts.Password == "" {
		opts.Username, opts.Password = "", ""
	}

	base, err := url.Parse(opts.AgentURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("malformed service URL %q", opts.AgentURL)
	}

	transport := cleanhttp.DefaultPooledTransport()
	if opts.Username == "" {
		// Anonymous sessions lean on TCP keep-alive probes to detect a
		// dead endpoint; authenticated ones present credentials per request.
		dialer := &net.Dialer{Timeout: opts.Timeout, KeepAlive: opts.CheckPeriod}
		transport.DialContext = dialer.DialContext
	}

	return &Client{
		opts:   opts,
		logger: opts.Logger.Named("jolokia"),
		base:   base,
		httpc:  &http.Client{Transport: transport, Timeout: opts.Timeout},
	}, nil
}

type request struct {
	Type      string `json:"type"`
	MBean     string `json:"mbean,omitempty"`
	Operation string `json:"operation,omitempty"`
}

type response struct {
	Status    int             `json:"status"`
	Value     json.RawMessage `json:"value"`
	Error     string          `json:"error"`
	ErrorType string          `json:"error_type"`
}

// Connect opens the session by asking the agent for its version. It returns
// a *ConnectError when the endpoint is unreachable or rejects the
// credentials.
func (c *Client) Connect(ctx context.Context) error {
	resp, err := c.do(ctx, request{Type: "version"})
	if err != nil {
		return &ConnectError{URL: c.base.String(), Err: err}
	}
	if resp.Status != http.StatusOK {
		return &ConnectError{
			URL: c.base.String(),
			Err: fmt.Errorf("agent returned status %d: %s", resp.Status, resp.Error),
		}
	}
	c.logger.Debug("connected to agent", zap.String("url", c.base.String()))
	return nil
}

// Search lists the canonical names of all MBeans matching the given
// ObjectName pattern.
func (c *Client) Search(ctx context.Context, pattern string) ([]string, error) {
	resp, err := c.do(ctx, request{Type: "search", MBean: pattern})
	if err != nil {
		return nil, fmt.Errorf("searching pattern %q: %w", pattern, err)
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("searching pattern %q: %s: %s", pattern, resp.ErrorType, resp.Error)
	}
	var names []string
	if err := json.Unmarshal(resp.Value, &names); err != nil {
		return nil, fmt.Errorf("searching pattern %q: decoding response: %w", pattern, err)
	}
	c.logger.Debug("search finished", zap.String("pattern", pattern), zap.Strings("matches", names))
	return names, nil
}

// Exec invokes the named zero-argument operation on the object and returns
// the loosely-typed result. A null remote result decodes to the null Value.
func (c *Client) Exec(ctx context.Context, objectName, operation string) (Value, error) {
	resp, err := c.do(ctx, request{Type: "exec", MBean: objectName, Operation: operation})
	if err != nil {
		return Value{}, &InvocationError{ObjectName: objectName, Operation: operation, Err: err}
	}
	if resp.Status != http.StatusOK {
		if strings.Contains(resp.ErrorType, "InstanceNotFoundException") {
			return Value{}, &InstanceNotFoundError{ObjectName: objectName}
		}
		return Value{}, &InvocationError{
			ObjectName: objectName,
			Operation:  operation,
			RemoteType: resp.ErrorType,
			Message:    resp.Error,
		}
	}
	var v Value
	if len(resp.Value) == 0 {
		return v, nil
	}
	if err := v.UnmarshalJSON(resp.Value); err != nil {
		return Value{}, &InvocationError{ObjectName: objectName, Operation: operation, Err: err}
	}
	return v, nil
}

// Close releases the session's transport resources. It is safe to call once
// per successful Connect.
func (c *Client) Close() error {
	c.httpc.CloseIdleConnections()
	c.logger.Debug("connection closed", zap.String("url", c.base.String()))
	return nil
}

func (c *Client) do(ctx context.Context, r request) (*response, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Username != "" {
		req.SetBasicAuth(c.opts.Username, c.opts.Password)
	}

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	switch httpResp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("authentication failed (HTTP %d)", httpResp.StatusCode)
	}

	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding agent response: %w", err)
	}
	return &resp, nil
}
