// Package config loads deployment configuration for the auction engine.
// Values come from an optional config file and the environment, with
// defaults suitable for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	Auction AuctionConfig  `mapstructure:"auction"`
	Mongo   MongoConfig    `mapstructure:"mongo"`
	Bidders []BidderConfig `mapstructure:"bidders"`
}

// AuctionConfig resolves the tunables the auction core would otherwise
// hardcode: shading, increment, deadline, currency.
type AuctionConfig struct {
	ShadingFactor    float64 `mapstructure:"shading_factor"`
	PriceIncrement   float64 `mapstructure:"price_increment"`
	DefaultTimeoutMS int64   `mapstructure:"default_timeout_ms"`
	DefaultCurrency  string  `mapstructure:"default_currency"`
}

// DefaultTimeout converts the configured budget into a duration.
func (a *AuctionConfig) DefaultTimeout() time.Duration {
	return time.Duration(a.DefaultTimeoutMS) * time.Millisecond
}

// MongoConfig points at the campaign-management store. An empty URI selects
// the in-memory demand reader.
type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// BidderConfig wires one external bidding endpoint.
type BidderConfig struct {
	Name     string `mapstructure:"name"`
	Endpoint string `mapstructure:"endpoint"`
	Encoding string `mapstructure:"encoding"` // "json" (default) or "cbor"
	// TimeoutMS, when positive, caps this endpoint's share of the auction
	// deadline.
	TimeoutMS int64 `mapstructure:"timeout_ms"`
}

func (b *BidderConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutMS) * time.Millisecond
}

// New builds a validated Config from a prepared Viper instance.
func New(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupViper registers defaults, the optional config file, and environment
// overrides (OPENEXCHANGE_* variables).
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/openexchange")
	}

	v.SetDefault("host", "")
	v.SetDefault("port", 8000)
	v.SetDefault("auction.shading_factor", 0.9)
	v.SetDefault("auction.price_increment", 0.01)
	v.SetDefault("auction.default_timeout_ms", 500)
	v.SetDefault("auction.default_currency", "USD")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "openexchange")
	v.SetDefault("mongo.collection", "demand_sources")

	v.SetEnvPrefix("openexchange")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; defaults plus environment carry dev
	// deployments.
	_ = v.ReadInConfig()
}

func (cfg *Config) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d is out of range", cfg.Port)
	}
	if f := cfg.Auction.ShadingFactor; f <= 0 || f > 1 {
		return fmt.Errorf("auction.shading_factor must be in (0, 1], got %v", f)
	}
	if cfg.Auction.PriceIncrement <= 0 {
		return fmt.Errorf("auction.price_increment must be positive, got %v", cfg.Auction.PriceIncrement)
	}
	if cfg.Auction.DefaultTimeoutMS <= 0 {
		return fmt.Errorf("auction.default_timeout_ms must be positive, got %d", cfg.Auction.DefaultTimeoutMS)
	}
	for i, b := range cfg.Bidders {
		if b.Name == "" {
			return fmt.Errorf("bidders[%d] missing name", i)
		}
		if b.Endpoint == "" {
			return fmt.Errorf("bidder %s missing endpoint", b.Name)
		}
		switch b.Encoding {
		case "", "json", "cbor":
		default:
			return fmt.Errorf("bidder %s has unknown encoding %q", b.Name, b.Encoding)
		}
		if b.TimeoutMS < 0 {
			return fmt.Errorf("bidder %s has negative timeout", b.Name)
		}
	}
	return nil
}
