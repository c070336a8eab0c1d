// Package relay is the mail relay behind the contact form: a small gin
// service that records each submission in a sqlite outbox and delivers
// it over SMTP.
package relay

import (
	"errors"
	"os"
)

// ErrNotConfigured is returned when SMTP delivery lacks credentials or a
// recipient.
var ErrNotConfigured = errors.New("smtp not configured")

// Config is the relay's environment.
type Config struct {
	Port      string
	Env       string
	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	EmailTo   string
	EmailFrom string
	DBPath    string

	// AdminToken enables the read-only outbox API when set.
	AdminToken string
}

// FromEnv reads PORT, APP_ENV, SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS,
// EMAIL_TO, EMAIL_FROM, RELAY_DB and ADMIN_TOKEN.
func FromEnv() Config {
	c := Config{
		Port:      os.Getenv("PORT"),
		Env:       os.Getenv("APP_ENV"),
		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  os.Getenv("SMTP_PORT"),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		EmailTo:   os.Getenv("EMAIL_TO"),
		EmailFrom: os.Getenv("EMAIL_FROM"),
		DBPath:    os.Getenv("RELAY_DB"),

		AdminToken: os.Getenv("ADMIN_TOKEN"),
	}
	if c.Port == "" {
		c.Port = "5000"
	}
	if c.SMTPHost == "" {
		c.SMTPHost = "smtp.gmail.com"
	}
	if c.SMTPPort == "" {
		c.SMTPPort = "587"
	}
	if c.EmailFrom == "" {
		c.EmailFrom = c.SMTPUser
	}
	if c.DBPath == "" {
		c.DBPath = "relay.db"
	}
	return c
}

// Development reports whether messages are logged instead of sent.
func (c Config) Development() bool { return c.Env == "development" }
