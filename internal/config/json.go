package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// names and string durations.
type StructuredJSONConfig struct {
	App struct {
		SessionSecret        string   `json:"session_secret"`
		SessionIssuer        string   `json:"session_issuer"`
		SessionIdleTimeout   Duration `json:"session_idle_timeout"`
		SessionMaxLifetime   Duration `json:"session_max_lifetime"`
		SessionSweepInterval Duration `json:"session_sweep_interval"`
		CookieName           string   `json:"cookie_name"`
		CookieInsecure       bool     `json:"cookie_insecure"`
		BcryptCost           int      `json:"bcrypt_cost"`
		DefaultCurrency      string   `json:"default_currency"`
		LogLevel             string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SessionSecret:        jsonCfg.App.SessionSecret,
			SessionIssuer:        jsonCfg.App.SessionIssuer,
			SessionIdleTimeout:   time.Duration(jsonCfg.App.SessionIdleTimeout),
			SessionMaxLifetime:   time.Duration(jsonCfg.App.SessionMaxLifetime),
			SessionSweepInterval: time.Duration(jsonCfg.App.SessionSweepInterval),
			CookieName:           jsonCfg.App.CookieName,
			CookieInsecure:       jsonCfg.App.CookieInsecure,
			BcryptCost:           jsonCfg.App.BcryptCost,
			DefaultCurrency:      jsonCfg.App.DefaultCurrency,
			LogLevel:             jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
