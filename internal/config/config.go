package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	// DeliveryFee is the flat amount added to an order total when the
	// shopper chooses home delivery. Fixed, never computed per distance
	// or weight.
	DeliveryFee float64
	// SubmitTimeout bounds a single order submission end to end.
	SubmitTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("SHOE_SHOP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	fee := 60.00
	if raw := os.Getenv("SHOE_SHOP_DELIVERY_FEE"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			fee = v
		}
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("SHOE_SHOP_SUBMIT_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			timeout = d
		}
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		DeliveryFee:   fee,
		SubmitTimeout: timeout,
	}
}
