package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"APP_PORT", "LEDGER_BACKEND", "EVM_RPC_URL", "LEDGER_TIMEOUT_SECONDS", "VAULT_INFO_TTL_SECONDS", "IDEMPOTENCY_TTL_SECONDS"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, BackendEVM, c.LedgerBackend)
	assert.Equal(t, 10*time.Second, c.LedgerTimeout())
	assert.Equal(t, 300*time.Second, c.IdempotencyTTL())
	assert.Equal(t, 30*time.Second, c.VaultInfoTTL())
	assert.Error(t, c.Validate(), "evm backend needs an RPC url")
}

func TestLoad_EnvFileDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LEDGER_BACKEND=sqlite\nSQLITE_PATH=/tmp/snap.db\nAPP_PORT=9000\n"), 0o600))
	t.Setenv("APP_PORT", "7000")
	// godotenv only fills variables that are absent; t.Setenv restores them
	for _, k := range []string{"LEDGER_BACKEND", "SQLITE_PATH"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	c := Load()
	assert.Equal(t, "7000", c.AppPort)
	assert.Equal(t, BackendSQLite, c.LedgerBackend)
	assert.Equal(t, "/tmp/snap.db", c.SQLitePath)
	assert.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "8080", LedgerBackend: BackendMySQL,
			MySQLHost: "db", MySQLPort: "3306", MySQLDB: "sv", MySQLUser: "sv",
			IdempTTLSecs: 300, VaultInfoTTLSecs: 30,
		}
	}
	require.NoError(t, base().Validate())

	c := base()
	c.MySQLPort = "not-a-port"
	assert.Error(t, c.Validate())

	c = base()
	c.LedgerBackend = "postgres"
	assert.ErrorContains(t, c.Validate(), "unknown LEDGER_BACKEND")

	c = base()
	c.IdempTTLSecs = 0
	assert.Error(t, c.Validate())

	c = base()
	c.LedgerBackend, c.EVMRPCURL = BackendEVM, "http://localhost:8545"
	assert.NoError(t, c.Validate())
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLHost: "db", MySQLPort: "3306", MySQLDB: "sv", MySQLUser: "u", MySQLPass: "p"}
	assert.Equal(t, "u:p@tcp(db:3306)/sv?parseTime=true&charset=utf8mb4,utf8", c.MySQLDSN())
}
