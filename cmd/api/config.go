package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/aniladanir/campaign-manager/internal/persistant"
	"github.com/joho/godotenv"
)

const defaultMsgMaxRetry = 3

type Config struct {
	HttpPort           int           `json:"http_port"`
	DbDriver           string        `json:"db_driver"`
	DbConnString       string        `json:"db_conn_string"`
	RedisAddr          string        `json:"redis_addr"`
	WebHookUrl         string        `json:"webhook_url"`
	MsgBatchSize       int           `json:"msg_batch_size"`
	MsgSendIntervalStr string        `json:"msg_send_interval"`
	MsgSendInterval    time.Duration `json:"-"`
	MsgMaxRetry        int           `json:"msg_max_retry"`
}

// LoadConfig reads the json config file, loads a .env file if one exists and
// applies environment overrides. A missing config file leaves the defaults.
func LoadConfig(configFile, envFile string) (*Config, error) {
	cfg := &Config{HttpPort: 6060, MsgMaxRetry: defaultMsgMaxRetry}

	content, err := os.ReadFile(configFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err = json.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configFile, err)
		}
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.MsgSendIntervalStr != "" {
		cfg.MsgSendInterval, err = time.ParseDuration(cfg.MsgSendIntervalStr)
		if err != nil {
			return nil, fmt.Errorf("msg_send_interval: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("CAMPAIGN_DB_DRIVER"); ok {
		c.DbDriver = v
	}
	if v, ok := os.LookupEnv("CAMPAIGN_DB_CONN"); ok {
		c.DbConnString = v
	}
	if v, ok := os.LookupEnv("CAMPAIGN_REDIS_ADDR"); ok {
		c.RedisAddr = v
	}
	if v, ok := os.LookupEnv("CAMPAIGN_WEBHOOK_URL"); ok {
		c.WebHookUrl = v
	}
	if v, ok := os.LookupEnv("CAMPAIGN_HTTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CAMPAIGN_HTTP_PORT: %w", err)
		}
		c.HttpPort = port
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HttpPort <= 0 || c.HttpPort > 65535 {
		return fmt.Errorf("http_port %d out of range", c.HttpPort)
	}
	switch c.DbDriver {
	case "":
	case persistant.DriverPostgres, persistant.DriverSqlite:
		if c.DbConnString == "" {
			return fmt.Errorf("db_conn_string is required for driver %s", c.DbDriver)
		}
	default:
		return fmt.Errorf("unknown db_driver %q", c.DbDriver)
	}
	if c.MsgMaxRetry < 0 {
		return errors.New("msg_max_retry can not be negative")
	}
	if c.WebHookUrl != "" {
		if c.MsgBatchSize <= 0 {
			return errors.New("msg_batch_size must be positive")
		}
		if c.MsgSendInterval <= 0 {
			return errors.New("msg_send_interval must be positive")
		}
		if c.MsgMaxRetry == 0 {
			return errors.New("msg_max_retry must be positive when a webhook is set")
		}
	}
	return nil
}
