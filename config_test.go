package clickatell

import (
	"errors"
	"testing"
	"time"

	"github.com/clickatell/clickatell-go/transport"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API != APIHTTP {
		t.Errorf("API = %v, want %v", cfg.API, APIHTTP)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %v, want %v", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.Timeout != transport.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, transport.DefaultTimeout)
	}
	if cfg.ConnectTimeout != transport.DefaultConnectTimeout {
		t.Errorf("ConnectTimeout = %v, want %v", cfg.ConnectTimeout, transport.DefaultConnectTimeout)
	}
}

func TestConfig_Builders(t *testing.T) {
	engine := transport.NewEngine()
	defer engine.Close()

	cfg := DefaultConfig().
		WithAPI(APIREST).
		WithBaseURL("https://staging.example.com/").
		WithRESTCredentials("tok", "12345").
		WithTimeout(10 * time.Second).
		WithConnectTimeout(2 * time.Second).
		WithEngine(engine).
		WithObserver(NoopObserver{})

	if cfg.API != APIREST {
		t.Errorf("API = %v, want %v", cfg.API, APIREST)
	}
	if cfg.BaseURL != "https://staging.example.com/" {
		t.Errorf("BaseURL = %v", cfg.BaseURL)
	}
	if cfg.APIKey != "tok" || cfg.APIID != "12345" {
		t.Errorf("credentials = %q/%q", cfg.APIKey, cfg.APIID)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.ConnectTimeout != 2*time.Second {
		t.Errorf("ConnectTimeout = %v", cfg.ConnectTimeout)
	}
	if cfg.Engine != engine {
		t.Error("Engine not set")
	}
	if cfg.Observer == nil {
		t.Error("Observer not set")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "http credentials complete",
			mutate: func(c *Config) { c.WithHTTPCredentials("u", "p", "1") },
		},
		{
			name:   "rest token and account id",
			mutate: func(c *Config) { c.WithAPI(APIREST).WithRESTCredentials("tok", "1") },
		},
		{
			name:    "http empty password",
			mutate:  func(c *Config) { c.WithHTTPCredentials("u", "", "1") },
			wantErr: true,
		},
		{
			name:    "http empty username",
			mutate:  func(c *Config) { c.WithHTTPCredentials("", "p", "1") },
			wantErr: true,
		},
		{
			name:    "rest empty token",
			mutate:  func(c *Config) { c.WithAPI(APIREST).WithRESTCredentials("", "1") },
			wantErr: true,
		},
		{
			name:    "missing account id",
			mutate:  func(c *Config) { c.WithHTTPCredentials("u", "p", "") },
			wantErr: true,
		},
		{
			name:    "empty base URL",
			mutate:  func(c *Config) { c.WithHTTPCredentials("u", "p", "1").WithBaseURL("") },
			wantErr: true,
		},
		{
			name:    "non-http base URL",
			mutate:  func(c *Config) { c.WithHTTPCredentials("u", "p", "1").WithBaseURL("ftp://x/") },
			wantErr: true,
		},
		{
			name:    "unknown API mode",
			mutate:  func(c *Config) { c.WithHTTPCredentials("u", "p", "1").WithAPI(API(7)) },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateNormalizesBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://api.clickatell.com", "https://api.clickatell.com/"},
		{"https://api.clickatell.com/", "https://api.clickatell.com/"},
		{"https://api.clickatell.com//", "https://api.clickatell.com/"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig().WithBaseURL(tt.in).WithHTTPCredentials("u", "p", "1")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%q) error = %v", tt.in, err)
		}
		if cfg.BaseURL != tt.want {
			t.Errorf("BaseURL normalized to %q, want %q", cfg.BaseURL, tt.want)
		}
	}
}

func TestAPIString(t *testing.T) {
	if APIHTTP.String() != "http" || APIREST.String() != "rest" || API(9).String() != "unknown" {
		t.Error("API.String() mapping is wrong")
	}
}
