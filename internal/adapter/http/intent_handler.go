package http

import (
	"net/http"
	"time"

	"stablevault-backend/internal/usecase/intent"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/labstack/echo/v4"
)

type IntentHandler struct{ uc *intent.Usecase }

func NewIntentHandler(uc *intent.Usecase) *IntentHandler { return &IntentHandler{uc: uc} }

type borrowReq struct {
	Token  string `json:"token"  validate:"required,evmaddr"`
	Amount string `json:"amount" validate:"required,uint256"`
	// unix seconds
	Maturity int64 `json:"maturity" validate:"required,gt=0"`
}

type repayReq struct {
	Token  string `json:"token"  validate:"required,evmaddr"`
	Amount string `json:"amount" validate:"required,uint256"`
}

type pledgeReq struct {
	Token   string `json:"token"   validate:"required,evmaddr"`
	Account string `json:"account" validate:"required,evmaddr"`
	Amount  string `json:"amount"  validate:"required,uint256"`
}

type liquidateReq struct {
	Token   string `json:"token"   validate:"required,evmaddr"`
	Account string `json:"account" validate:"required,evmaddr"`
}

// bind decodes and validates the body; a false return means the error
// response has already been written.
func bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

// validated fields are known to parse
func addr(s string) common.Address { return common.HexToAddress(s) }
func amount(s string) *uint256.Int { return uint256.MustFromDecimal(s) }

func respond(c echo.Context, in *intent.Intent, err error) error {
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

func (h *IntentHandler) Borrow(c echo.Context) error {
	var req borrowReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in, err := h.uc.Borrow(addr(req.Token), amount(req.Amount), time.Unix(req.Maturity, 0))
	return respond(c, in, err)
}

func (h *IntentHandler) Repay(c echo.Context) error {
	var req repayReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in, err := h.uc.Repay(addr(req.Token), amount(req.Amount))
	return respond(c, in, err)
}

func (h *IntentHandler) IncreasePledge(c echo.Context) error {
	var req pledgeReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in, err := h.uc.IncreasePledge(addr(req.Token), addr(req.Account), amount(req.Amount))
	return respond(c, in, err)
}

func (h *IntentHandler) Liquidate(c echo.Context) error {
	var req liquidateReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	in, err := h.uc.Liquidate(addr(req.Token), addr(req.Account))
	return respond(c, in, err)
}
