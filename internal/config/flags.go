package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (postgres, sqlite3)
//	-c/-config json file path with configs
//	-session-secret session cookie signing secret
//	-session-issuer session cookie issuer
//	-session-idle-timeout sliding session window (e.g. "24h")
//	-session-max-lifetime absolute session lifetime (e.g. "720h")
//	-session-sweep-interval expired session cleanup period
//	-cookie-name session cookie name
//	-cookie-insecure send the session cookie over plain HTTP
//	-bcrypt-cost bcrypt work factor
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-shutdown-timeout graceful shutdown timeout
//	-log-level minimum log level
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var sessionSecret, sessionIssuer, cookieName string
	var sessionIdleTimeout, sessionMaxLifetime, sessionSweepInterval time.Duration
	var cookieInsecure bool
	var bcryptCost int
	var requestTimeout, shutdownTimeout time.Duration
	var logLevel string

	fs := flag.NewFlagSet("expense-ledger", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "driver", "", "Database driver (postgres, sqlite3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&sessionSecret, "session-secret", "", "Session cookie signing secret")
	fs.StringVar(&sessionIssuer, "session-issuer", "", "Session cookie issuer")
	fs.DurationVar(&sessionIdleTimeout, "session-idle-timeout", 0, "Sliding session window (e.g., 24h)")
	fs.DurationVar(&sessionMaxLifetime, "session-max-lifetime", 0, "Absolute session lifetime (e.g., 720h)")
	fs.DurationVar(&sessionSweepInterval, "session-sweep-interval", 0, "Expired session cleanup period")
	fs.StringVar(&cookieName, "cookie-name", "", "Session cookie name")
	fs.BoolVar(&cookieInsecure, "cookie-insecure", false, "Allow the session cookie over plain HTTP")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			SessionSecret:        sessionSecret,
			SessionIssuer:        sessionIssuer,
			SessionIdleTimeout:   sessionIdleTimeout,
			SessionMaxLifetime:   sessionMaxLifetime,
			SessionSweepInterval: sessionSweepInterval,
			CookieName:           cookieName,
			CookieInsecure:       cookieInsecure,
			BcryptCost:           bcryptCost,
			LogLevel:             logLevel,
		},
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
