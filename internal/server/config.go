package server

import (
	"fmt"
	"time"

	"github.com/swaplink/bridge-widget/internal/ratelimit"
	"github.com/swaplink/bridge-widget/internal/widget"
)

const DefaultAddr = "0.0.0.0:3000"

type Config struct {
	HTTP      HTTPConfig
	Assets    AssetsConfig
	RateLimit RateLimitConfig
	Widget    WidgetConfig
}

type HTTPConfig struct {
	Addr          string
	CertFile      string
	KeyFile       string
	SlowThreshold time.Duration
}

type AssetsConfig struct {
	Dir string
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type WidgetConfig struct {
	DefaultInputChain int64
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = DefaultAddr
	}
	if c.HTTP.SlowThreshold <= 0 {
		c.HTTP.SlowThreshold = time.Second
	}
	if c.RateLimit.Limit <= 0 {
		c.RateLimit.Limit = ratelimit.DefaultLimit
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = ratelimit.DefaultWindow
	}
	if c.Widget.DefaultInputChain == 0 {
		c.Widget.DefaultInputChain = widget.ChainEthereum
	}
	if !widget.IsSupported(c.Widget.DefaultInputChain) {
		return fmt.Errorf("default input chain %d: %w", c.Widget.DefaultInputChain, widget.ErrUnsupportedChain)
	}
	if c.Assets.Dir == "" {
		return fmt.Errorf("assets directory is required")
	}
	return nil
}
