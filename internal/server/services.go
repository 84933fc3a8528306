package server

import (
	"fmt"

	"github.com/swaplink/bridge-widget/internal/ratelimit"
	"github.com/swaplink/bridge-widget/internal/server/assets"
)

type Services struct {
	Assets  assets.Source
	Limiter *ratelimit.Limiter
}

func NewServices(config *Config) (*Services, error) {
	src, err := assets.NewDirSource(config.Assets.Dir)
	if err != nil {
		return nil, fmt.Errorf("create asset source: %w", err)
	}

	limiter := ratelimit.New(config.RateLimit.Limit, config.RateLimit.Window)

	return &Services{
		Assets:  src,
		Limiter: limiter,
	}, nil
}
