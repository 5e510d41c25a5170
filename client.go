package clickatell

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clickatell/clickatell-go/strbuf"
	"github.com/clickatell/clickatell-go/transport"
)

// Gateway paths per API mode. Legacy paths carry credentials as query
// fields; REST paths embed identifiers directly.
const (
	pathSend     = "http/sendmsg.php"
	pathStatus   = "http/querymsg.php"
	pathBalance  = "http/getbalance.php"
	pathCharge   = "http/getmsgcharge.php"
	pathCoverage = "utils/routecoverage.php"
	pathStop     = "http/delmsg.php"

	pathRESTMessage  = "rest/message"
	pathRESTBalance  = "rest/account/balance"
	pathRESTCoverage = "rest/coverage/"
)

// credentials holds exactly one of the two authentication variants, selected
// by API mode at construction. Access goes through the mode-checked
// accessors so the exclusivity is never violated.
type credentials struct {
	api      API
	username string
	password string
	token    string
}

func (cr credentials) form() (username, password string, ok bool) {
	if cr.api != APIHTTP {
		return "", "", false
	}
	return cr.username, cr.password, true
}

func (cr credentials) bearer() (string, bool) {
	if cr.api != APIREST {
		return "", false
	}
	return cr.token, true
}

// Client is an authenticated session against the Clickatell gateway. It
// exposes the six gateway operations and holds the most recent raw response.
// A Client is not safe for concurrent use; it owns a single response slot
// and guards against misuse with an internal mutex rather than supporting
// parallel calls.
type Client struct {
	mu     sync.Mutex
	api    API
	base   string
	apiID  string
	creds  credentials
	exec   transport.Executor
	engine *transport.Engine // owned engine; nil when borrowed or external
	obs    Observer
	closed bool
}

// New validates the configuration and returns a ready client. No partial
// client is ever returned on error.
func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, validationErr("new", err)
	}

	c := &Client{
		api:   cfg.API,
		base:  cfg.BaseURL,
		apiID: cfg.APIID,
		creds: credentials{
			api:      cfg.API,
			username: cfg.Username,
			password: cfg.Password,
			token:    cfg.APIKey,
		},
		obs: cfg.Observer,
	}
	if c.obs == nil {
		c.obs = NoopObserver{}
	}

	if cfg.Executor != nil {
		c.exec = cfg.Executor
	} else {
		engine := cfg.Engine
		if engine == nil {
			engine = transport.NewEngine()
			c.engine = engine
		}
		exec, err := engine.NewClient(cfg.Timeout, cfg.ConnectTimeout)
		if err != nil {
			if c.engine != nil {
				c.engine.Close()
			}
			return nil, transportErr("new", err)
		}
		c.exec = exec
	}

	headers, err := defaultHeaders(c.api, cfg.APIKey)
	if err != nil {
		c.Close()
		return nil, validationErr("new", err)
	}
	c.exec.SetHeaders(headers)
	return c, nil
}

// defaultHeaders builds the per-mode request headers. REST mode negotiates
// JSON and carries the bearer token; legacy mode sends keep-alive and
// cache-control hints.
func defaultHeaders(api API, token string) ([]transport.Header, error) {
	if api == APIREST {
		auth, err := strbuf.New("Bearer ")
		if err != nil {
			return nil, err
		}
		if err := auth.AppendString(token); err != nil {
			return nil, err
		}
		return []transport.Header{
			{Key: "X-Version", Value: "1"},
			{Key: "Content-Type", Value: "application/json"},
			{Key: "Accept", Value: "application/json"},
			{Key: "Authorization", Value: auth.String()},
		}, nil
	}
	return []transport.Header{
		{Key: "Connection", Value: "keep-alive"},
		{Key: "Cache-Control", Value: "max-age=0"},
		{Key: "Origin", Value: "null"},
	}, nil
}

// SetHeaders replaces the default request headers. The replacement applies
// to every subsequent call.
func (c *Client) SetHeaders(headers []transport.Header) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return validationErr("set headers", ErrClosed)
	}
	c.exec.SetHeaders(headers)
	return nil
}

// Send submits text to one or more recipients and returns the raw gateway
// response. An empty text or recipient list fails before any network I/O.
func (c *Client) Send(ctx context.Context, text string, to []string) (string, error) {
	const op = "send"
	if text == "" {
		return "", validationErr(op, fmt.Errorf("%w: empty message text", ErrInvalidInput))
	}
	if len(to) == 0 {
		return "", validationErr(op, fmt.Errorf("%w: no recipients", ErrInvalidInput))
	}
	for _, r := range to {
		if r == "" {
			return "", validationErr(op, fmt.Errorf("%w: empty recipient", ErrInvalidInput))
		}
	}

	if c.api == APIREST {
		p, err := newParamSet(1)
		if err != nil {
			return "", validationErr(op, err)
		}
		p.add("text", text)
		p.setRecipients(to)
		return c.do(ctx, op, pathRESTMessage, transport.MethodPost, p)
	}

	p, err := c.formParams(4)
	if err != nil {
		return "", validationErr(op, err)
	}
	if err := p.addEncoded("text", text); err != nil {
		return "", validationErr(op, err)
	}
	p.setRecipients(to)
	return c.do(ctx, op, pathSend, transport.MethodGet, p)
}

// Status queries the delivery status of a previously sent message.
func (c *Client) Status(ctx context.Context, apiMsgID string) (string, error) {
	return c.messageQuery(ctx, "status", pathStatus, apiMsgID, transport.MethodGet)
}

// Charge queries the units charged for a previously sent message.
func (c *Client) Charge(ctx context.Context, apiMsgID string) (string, error) {
	return c.messageQuery(ctx, "charge", pathCharge, apiMsgID, transport.MethodGet)
}

// Stop requests cancellation of a queued message. Delivery is not guaranteed
// to be prevented; the gateway stops the message only if it has not yet been
// handed off.
func (c *Client) Stop(ctx context.Context, apiMsgID string) (string, error) {
	return c.messageQuery(ctx, "stop", pathStop, apiMsgID, transport.MethodDelete)
}

// messageQuery covers the three per-message operations, which differ only in
// path and verb. The legacy API always uses GET; the REST verb is the one
// passed in.
func (c *Client) messageQuery(ctx context.Context, op, legacyPath, apiMsgID string, restMethod transport.Method) (string, error) {
	if apiMsgID == "" {
		return "", validationErr(op, fmt.Errorf("%w: empty message ID", ErrInvalidInput))
	}
	if c.api == APIREST {
		return c.do(ctx, op, pathRESTMessage+"/"+apiMsgID, restMethod, nil)
	}
	p, err := c.formParams(4)
	if err != nil {
		return "", validationErr(op, err)
	}
	if err := p.addEncoded("apimsgid", apiMsgID); err != nil {
		return "", validationErr(op, err)
	}
	return c.do(ctx, op, legacyPath, transport.MethodGet, p)
}

// Balance returns the account's remaining credit.
func (c *Client) Balance(ctx context.Context) (string, error) {
	const op = "balance"
	if c.api == APIREST {
		return c.do(ctx, op, pathRESTBalance, transport.MethodGet, nil)
	}
	p, err := c.formParams(3)
	if err != nil {
		return "", validationErr(op, err)
	}
	return c.do(ctx, op, pathBalance, transport.MethodGet, p)
}

// Coverage checks whether the gateway can route messages to msisdn.
func (c *Client) Coverage(ctx context.Context, msisdn string) (string, error) {
	const op = "coverage"
	if msisdn == "" {
		return "", validationErr(op, fmt.Errorf("%w: empty MSISDN", ErrInvalidInput))
	}
	if c.api == APIREST {
		return c.do(ctx, op, pathRESTCoverage+msisdn, transport.MethodGet, nil)
	}
	p, err := c.formParams(4)
	if err != nil {
		return "", validationErr(op, err)
	}
	if err := p.addEncoded("msisdn", msisdn); err != nil {
		return "", validationErr(op, err)
	}
	return c.do(ctx, op, pathCoverage, transport.MethodGet, p)
}

// formParams starts a legacy parameter set with the credential fields every
// legacy call carries.
func (c *Client) formParams(n int) (*paramSet, error) {
	username, password, ok := c.creds.form()
	if !ok {
		return nil, fmt.Errorf("%w: credentials do not match API mode", ErrInvalidInput)
	}
	p, err := newParamSet(n)
	if err != nil {
		return nil, err
	}
	if err := p.addEncoded("user", username); err != nil {
		return nil, err
	}
	if err := p.addEncoded("password", password); err != nil {
		return nil, err
	}
	if err := p.addEncoded("api_id", c.apiID); err != nil {
		return nil, err
	}
	return p, nil
}

// do runs one gateway call: discard the previous response, build the target,
// execute, and hand back an owned copy of the raw response. A successful call
// with no body returns the empty string.
func (c *Client) do(ctx context.Context, op, path string, method transport.Method, p *paramSet) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return "", validationErr(op, ErrClosed)
	}

	c.exec.Reset()
	target, body, err := buildTarget(c.base, path, c.api, method, p)
	if err != nil {
		return "", validationErr(op, err)
	}

	c.obs.OnRequestStart(method, target)
	start := time.Now()
	err = c.exec.Execute(ctx, target, method, body)
	c.obs.OnRequestEnd(method, target, c.exec.Status(), time.Since(start), err)
	if err != nil {
		return "", transportErr(op, err)
	}

	resp := c.exec.Response()
	if resp == nil {
		return "", nil
	}
	return resp.String(), nil
}

// LastStatus returns the HTTP status code of the most recent call, or zero
// when no call has reached the gateway yet.
func (c *Client) LastStatus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exec.Status()
}

// LastResult returns the transport outcome of the most recent call.
func (c *Client) LastResult() transport.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exec.Result()
}

// LastResponse returns the raw response held by the client, or the empty
// string when none is present.
func (c *Client) LastResponse() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if resp := c.exec.Response(); resp != nil {
		return resp.String()
	}
	return ""
}

// Close shuts the client down, releasing the executor and, when the client
// created its own transport engine, the engine too. Close is idempotent and
// a nil receiver is a no-op.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.exec != nil {
		if err := c.exec.Close(); err != nil {
			return err
		}
	}
	if c.engine != nil {
		return c.engine.Close()
	}
	return nil
}
