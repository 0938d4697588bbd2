package http

import (
	"net/http"

	"stablevault-backend/internal/usecase/history"
	"stablevault-backend/internal/usecase/vault"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type BorrowHandler struct {
	history *history.Usecase
	vault   *vault.Usecase
}

func NewBorrowHandler(h *history.Usecase, v *vault.Usecase) *BorrowHandler {
	return &BorrowHandler{history: h, vault: v}
}

type recordsResp struct {
	Vault    common.Address       `json:"vault"`
	Borrower common.Address       `json:"borrower"`
	All      bool                 `json:"all"`
	Records  []history.RecordView `json:"records"`
}

// Records lists the borrower's visible positions, newest first.
func (h *BorrowHandler) Records(c echo.Context) error {
	v, ok := pathAddress(c, "vault")
	if !ok {
		return badRequest(c, "invalid vault address")
	}
	borrower, ok := pathAddress(c, "address")
	if !ok {
		return badRequest(c, "invalid borrower address")
	}
	all, ok := queryBool(c, "all")
	if !ok {
		return badRequest(c, "all must be true or false")
	}

	views, err := h.history.History(c.Request().Context(), v, borrower, all)
	if err != nil {
		return writeErr(c, err)
	}
	if views == nil {
		views = []history.RecordView{}
	}
	return c.JSON(http.StatusOK, recordsResp{Vault: v, Borrower: borrower, All: all, Records: views})
}

// Liquidations pages the vault's liquidation list over [start, end).
func (h *BorrowHandler) Liquidations(c echo.Context) error {
	v, ok := pathAddress(c, "vault")
	if !ok {
		return badRequest(c, "invalid vault address")
	}
	start, ok := queryUint(c, "start", 0)
	if !ok {
		return badRequest(c, "start must be an unsigned integer")
	}
	end, ok := queryUint(c, "end", start+defaultPageSize)
	if !ok {
		return badRequest(c, "end must be an unsigned integer")
	}
	if end >= start && end-start > maxPageSize {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "end", Message: "page must not exceed 100 records"}},
		})
	}

	page, err := h.history.LiquidationList(c.Request().Context(), v, start, end)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *BorrowHandler) Info(c echo.Context) error {
	v, ok := pathAddress(c, "vault")
	if !ok {
		return badRequest(c, "invalid vault address")
	}
	info, err := h.vault.Info(c.Request().Context(), v)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

type quoteResp struct {
	Amount     decimal.Decimal `json:"amount"`
	Collateral decimal.Decimal `json:"collateral"`
}

// LiquidationQuote reports the collateral released for repaying amount.
func (h *BorrowHandler) LiquidationQuote(c echo.Context) error {
	v, ok := pathAddress(c, "vault")
	if !ok {
		return badRequest(c, "invalid vault address")
	}
	amt, err := uint256.FromDecimal(c.QueryParam("amount"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "amount", Message: "must be a base-10 integer within uint256"}},
		})
	}
	out, err := h.vault.LiquidationQuote(c.Request().Context(), v, amt.ToBig())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, quoteResp{Amount: decimal.NewFromBigInt(amt.ToBig(), 0), Collateral: out})
}
