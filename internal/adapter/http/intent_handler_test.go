package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"stablevault-backend/internal/adapter/middleware"
	"stablevault-backend/internal/testutil/ledgermock"
	"stablevault-backend/internal/usecase/history"
	"stablevault-backend/internal/usecase/intent"
	"stablevault-backend/internal/usecase/vault"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const collateralHex = "0x00000000000000000000000000000000000000c1"

func post(e *echo.Echo, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(stdhttp.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeIntent(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestIntent_Borrow(t *testing.T) {
	e := newServer(&ledgermock.Ledger{})
	maturity := now.Add(30 * 24 * time.Hour).Unix()
	body := `{"token":"` + collateralHex + `","amount":"1500000000000000000","maturity":` + strconv.FormatInt(maturity, 10) + `}`

	out := decodeIntent(t, post(e, "/intents/borrow", body, nil))
	assert.Equal(t, "deposit", out["method"])
	assert.Equal(t, collateralHex, out["to"])
	assert.Equal(t, "0x0", out["value"])
	assert.True(t, strings.HasPrefix(out["data"], "0x"))
	assert.Len(t, out["data"], 2+2*(4+64))
}

func TestIntent_BorrowPastMaturity(t *testing.T) {
	e := newServer(&ledgermock.Ledger{})
	body := `{"token":"` + collateralHex + `","amount":"1","maturity":` + strconv.FormatInt(now.Unix(), 10) + `}`

	rec := post(e, "/intents/borrow", body, nil)
	assert.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "maturity")
}

func TestIntent_RepayPledgeLiquidate(t *testing.T) {
	e := newServer(&ledgermock.Ledger{})

	out := decodeIntent(t, post(e, "/intents/repay", `{"token":"`+collateralHex+`","amount":"700"}`, nil))
	assert.Equal(t, "withdraw", out["method"])

	out = decodeIntent(t, post(e, "/intents/pledge",
		`{"token":"`+collateralHex+`","account":"`+alice.Hex()+`","amount":"5"}`, nil))
	assert.Equal(t, "inc", out["method"])

	out = decodeIntent(t, post(e, "/intents/liquidate",
		`{"token":"`+collateralHex+`","account":"`+alice.Hex()+`"}`, nil))
	assert.Equal(t, "liquidate", out["method"])
}

func TestIntent_ValidationAndBind(t *testing.T) {
	e := newServer(&ledgermock.Ledger{})

	rec := post(e, "/intents/repay", `{"token":"0x12","amount":"-4"}`, nil)
	require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, containsFieldMsg(resp.Details, "token", "address"), "%+v", resp.Details)
	assert.True(t, containsFieldMsg(resp.Details, "amount", "uint256"), "%+v", resp.Details)

	rec = post(e, "/intents/repay", `{"token":`, nil)
	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)

	rec = post(e, "/intents/repay", `{"token":"`+collateralHex+`","amount":"0"}`, nil)
	assert.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
}

func TestIntent_IdempotentReplay(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	e := echo.New()
	e.Validator = NewValidator()
	Routes{
		Health:      NewHandler("evm"),
		Borrow:      NewBorrowHandler(history.NewUsecase(&ledgermock.Ledger{}, clock), vault.NewUsecase(&ledgermock.Ledger{}, nil, 0)),
		Intent:      NewIntentHandler(intent.NewUsecase(clock)),
		Idempotency: middleware.Idempotency(rdb, time.Minute),
	}.Register(e)

	body := `{"token":"` + collateralHex + `","amount":"700"}`
	hdr := map[string]string{
		"Ax-Request-Id": strings.Repeat("c", 32),
		"Ax-Request-At": strconv.FormatInt(time.Now().Unix(), 10),
		"Ax-Account":    alice.Hex(),
	}

	first := post(e, "/intents/repay", body, hdr)
	require.Equal(t, stdhttp.StatusOK, first.Code, first.Body.String())
	second := post(e, "/intents/repay", body, hdr)
	assert.Equal(t, first.Body.String(), second.Body.String())

	assert.Equal(t, stdhttp.StatusBadRequest, post(e, "/intents/repay", body, nil).Code)
	// reads are not gated
	assert.Equal(t, stdhttp.StatusOK, get(e, "/health").Code)
}
