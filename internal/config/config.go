package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Ledger backends.
const (
	BackendEVM    = "evm"
	BackendMySQL  = "mysql"
	BackendSQLite = "sqlite"
)

type Config struct {
	AppPort  string
	LogLevel string

	LedgerBackend     string
	EVMRPCURL         string
	LedgerTimeoutSecs int

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	SQLitePath string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs     int
	VaultInfoTTLSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		LedgerBackend:     strings.ToLower(getenv("LEDGER_BACKEND", BackendEVM)),
		EVMRPCURL:         getenv("EVM_RPC_URL", ""),
		LedgerTimeoutSecs: getenvInt("LEDGER_TIMEOUT_SECONDS", 10),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "stablevault"),
		MySQLUser: getenv("MYSQL_USER", "stablevault"),
		MySQLPass: getenv("MYSQL_PASS", "stablevault"),

		SQLitePath: getenv("SQLITE_PATH", "stablevault.db"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs:     getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		VaultInfoTTLSecs: getenvInt("VAULT_INFO_TTL_SECONDS", 30),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.LedgerBackend {
	case BackendEVM:
		if c.EVMRPCURL == "" {
			return errors.New("missing EVM_RPC_URL for evm ledger backend")
		}
	case BackendMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH for sqlite ledger backend")
		}
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q (want evm, mysql or sqlite)", c.LedgerBackend)
	}
	if c.LedgerTimeoutSecs < 0 || c.IdempTTLSecs <= 0 || c.VaultInfoTTLSecs < 0 {
		return errors.New("LEDGER_TIMEOUT_SECONDS and VAULT_INFO_TTL_SECONDS must be >= 0, IDEMPOTENCY_TTL_SECONDS > 0")
	}
	return nil
}

func (c *Config) LedgerTimeout() time.Duration { return time.Duration(c.LedgerTimeoutSecs) * time.Second }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) VaultInfoTTL() time.Duration { return time.Duration(c.VaultInfoTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
