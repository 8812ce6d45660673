package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const DefaultPath = "credentials.yaml"

// SMTP holds the sender account used by the smtp transport.
type SMTP struct {
	SenderEmail    string `mapstructure:"sender_email"`
	SenderPassword string `mapstructure:"sender_password"`
	SMTPServer     string `mapstructure:"smtp_server"`
	SMTPPort       int    `mapstructure:"smtp_port"`
}

func (c SMTP) validate() error {
	switch {
	case c.SenderEmail == "":
		return errors.New("sender_email is required")
	case c.SenderPassword == "":
		return errors.New("sender_password is required")
	case c.SMTPServer == "":
		return errors.New("smtp_server is required")
	case c.SMTPPort <= 0:
		return errors.New("smtp_port is required")
	}
	return nil
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func Load(path string) (*SMTP, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var c SMTP
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid credentials file %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the credentials as plaintext YAML readable only by the owner.
func Save(path string, c SMTP) error {
	if err := c.validate(); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigPermissions(0o600)
	v.Set("sender_email", c.SenderEmail)
	v.Set("sender_password", c.SenderPassword)
	v.Set("smtp_server", c.SMTPServer)
	v.Set("smtp_port", c.SMTPPort)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}
