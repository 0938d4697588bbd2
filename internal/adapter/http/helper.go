package http

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

// ---- request param helpers ----

func pathAddress(c echo.Context, name string) (common.Address, bool) {
	a, err := parseAddress(c.Param(name))
	return a, err == nil
}

// queryUint reads an optional unsigned query param, returning def when absent.
func queryUint(c echo.Context, name string, def uint64) (uint64, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	return n, err == nil
}

func queryBool(c echo.Context, name string) (bool, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, true
	}
	b, err := strconv.ParseBool(raw)
	return b, err == nil
}
