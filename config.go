package clickatell

import (
	"fmt"
	"strings"
	"time"

	"github.com/clickatell/clickatell-go/transport"
)

// API selects which of the two Clickatell gateway protocols the client
// speaks.
type API int

const (
	// APIHTTP is the legacy HTTP API. Requests are GET or POST with
	// query-encoded parameters and credentials sent as user, password and
	// api_id fields.
	APIHTTP API = iota
	// APIREST is the REST API. Requests carry JSON bodies and a bearer
	// token.
	APIREST
)

func (a API) String() string {
	switch a {
	case APIHTTP:
		return "http"
	case APIREST:
		return "rest"
	default:
		return "unknown"
	}
}

// DefaultBaseURL is the production Clickatell gateway.
const DefaultBaseURL = "https://api.clickatell.com/"

// Config holds the client configuration. Use DefaultConfig and the With*
// builders, then pass the result to New.
type Config struct {
	// API selects the legacy HTTP API or the REST API.
	API API

	// BaseURL is the gateway root. API paths are appended to it.
	BaseURL string

	// APIID identifies the Clickatell account product. Required in both
	// modes.
	APIID string

	// Username and Password authenticate legacy HTTP calls. Required
	// when API is APIHTTP.
	Username string
	Password string

	// APIKey is the REST bearer token. Required when API is APIREST.
	APIKey string

	// Timeout bounds each whole request. Non-positive values fall back
	// to the transport default.
	Timeout time.Duration

	// ConnectTimeout bounds connection establishment. Non-positive
	// values fall back to the transport default.
	ConnectTimeout time.Duration

	// Engine supplies the transport subsystem. When nil the client
	// creates and owns one, shutting it down on Close. A caller-supplied
	// engine is never closed by the client.
	Engine *transport.Engine

	// Executor overrides the request executor. Intended for tests; when
	// set, Engine and the timeout fields are ignored.
	Executor transport.Executor

	// Observer receives request lifecycle notifications. Nil means no
	// instrumentation.
	Observer Observer
}

// DefaultConfig returns a Config pointed at the production gateway with
// default timeouts. Credentials must still be supplied.
func DefaultConfig() *Config {
	return &Config{
		API:            APIHTTP,
		BaseURL:        DefaultBaseURL,
		Timeout:        transport.DefaultTimeout,
		ConnectTimeout: transport.DefaultConnectTimeout,
	}
}

// WithAPI selects the gateway protocol.
func (c *Config) WithAPI(api API) *Config {
	c.API = api
	return c
}

// WithBaseURL points the client at a different gateway root.
func (c *Config) WithBaseURL(baseURL string) *Config {
	c.BaseURL = baseURL
	return c
}

// WithHTTPCredentials sets the legacy HTTP API credentials.
func (c *Config) WithHTTPCredentials(username, password, apiID string) *Config {
	c.Username = username
	c.Password = password
	c.APIID = apiID
	return c
}

// WithRESTCredentials sets the REST API credentials.
func (c *Config) WithRESTCredentials(apiKey, apiID string) *Config {
	c.APIKey = apiKey
	c.APIID = apiID
	return c
}

// WithTimeout sets the per-request timeout.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithConnectTimeout sets the connection establishment timeout.
func (c *Config) WithConnectTimeout(timeout time.Duration) *Config {
	c.ConnectTimeout = timeout
	return c
}

// WithEngine supplies a shared transport engine. The caller keeps ownership.
func (c *Config) WithEngine(engine *transport.Engine) *Config {
	c.Engine = engine
	return c
}

// WithExecutor overrides the request executor.
func (c *Config) WithExecutor(exec transport.Executor) *Config {
	c.Executor = exec
	return c
}

// WithObserver attaches request instrumentation.
func (c *Config) WithObserver(obs Observer) *Config {
	c.Observer = obs
	return c
}

// Validate checks the configuration, normalizing the base URL to end in a
// single slash.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w: base URL must be http or https", ErrInvalidConfig)
	}
	if c.APIID == "" {
		return fmt.Errorf("%w: API ID is required", ErrInvalidConfig)
	}
	switch c.API {
	case APIHTTP:
		if c.Username == "" {
			return fmt.Errorf("%w: username is required for the HTTP API", ErrInvalidConfig)
		}
		if c.Password == "" {
			return fmt.Errorf("%w: password is required for the HTTP API", ErrInvalidConfig)
		}
	case APIREST:
		if c.APIKey == "" {
			return fmt.Errorf("%w: API key is required for the REST API", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown API mode %d", ErrInvalidConfig, c.API)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/") + "/"
	return nil
}
