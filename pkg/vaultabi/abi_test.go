package vaultabi

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectors(t *testing.T) {
	cases := []struct {
		abi    abi.ABI
		method string
		sig    string
	}{
		{Vault, "getRecord", "getRecord(uint256)"},
		{Vault, "getRecordIndex", "getRecordIndex(address)"},
		{Vault, "getliqRecord", "getliqRecord(uint256,uint256)"},
		{Vault, "getAllRate", "getAllRate()"},
		{Collateral, "deposit", "deposit(uint256,uint256)"},
		{Collateral, "inc", "inc(address,uint256)"},
		{Stable, "withdraw", "withdraw(uint256)"},
		{Stable, "liquidate", "liquidate(address)"},
	}
	for _, c := range cases {
		m, ok := c.abi.Methods[c.method]
		require.True(t, ok, "%s missing", c.method)
		assert.Equal(t, crypto.Keccak256([]byte(c.sig))[:4], m.ID, c.sig)
	}
}

func TestGetRecordOutputIsTwelveFieldTuple(t *testing.T) {
	m := Vault.Methods["getRecord"]
	require.Len(t, m.Outputs, 1)
	assert.Len(t, m.Outputs[0].Type.TupleElems, 12)
}
