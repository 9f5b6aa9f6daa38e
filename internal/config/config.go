package config

import (
	"os"
)

type StripeConfig struct {
	SecretKey string
}

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

type EmailConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type Config struct {
	DatabaseURL string
	JWTSecret   string
	FrontendURL string
	Port        string
	Stripe      StripeConfig
	PayPal      PayPalConfig
	Email       EmailConfig
}

func LoadConfig() *Config {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		Port:        os.Getenv("PORT"),
	}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")

	cfg.PayPal.ClientID = os.Getenv("PAYPAL_CLIENT_ID")
	cfg.PayPal.ClientSecret = os.Getenv("PAYPAL_CLIENT_SECRET")
	cfg.PayPal.BaseURL = os.Getenv("PAYPAL_BASE_URL")

	cfg.Email.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = os.Getenv("EMAIL_FROM_NAME")

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:5173"
	}

	return cfg
}
