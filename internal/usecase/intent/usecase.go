package intent

import (
	"fmt"
	"math/big"
	"time"

	"stablevault-backend/pkg/vaultabi"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

type Usecase struct {
	now func() time.Time
}

// NewUsecase builds the intent encoder. A nil clock means time.Now.
func NewUsecase(now func() time.Time) *Usecase {
	if now == nil {
		now = time.Now
	}
	return &Usecase{now: now}
}

// Borrow deposits amount of collateral and opens a position maturing at
// maturity.
func (u *Usecase) Borrow(collateral common.Address, amount *uint256.Int, maturity time.Time) (*Intent, error) {
	if err := checkAddr(collateral); err != nil {
		return nil, err
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	if !maturity.After(u.now()) {
		return nil, ErrMaturityElapsed
	}
	return build(vaultabi.Collateral, collateral, "deposit", amount.ToBig(), big.NewInt(maturity.Unix()))
}

// Repay returns amount of the stable token against the caller's position.
func (u *Usecase) Repay(stable common.Address, amount *uint256.Int) (*Intent, error) {
	if err := checkAddr(stable); err != nil {
		return nil, err
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	return build(vaultabi.Stable, stable, "withdraw", amount.ToBig())
}

// IncreasePledge adds collateral to account's open position.
func (u *Usecase) IncreasePledge(collateral, account common.Address, amount *uint256.Int) (*Intent, error) {
	if err := checkAddr(collateral); err != nil {
		return nil, err
	}
	if err := checkAddr(account); err != nil {
		return nil, err
	}
	if err := checkAmount(amount); err != nil {
		return nil, err
	}
	return build(vaultabi.Collateral, collateral, "inc", account, amount.ToBig())
}

// Liquidate settles account's overdue position.
func (u *Usecase) Liquidate(stable, account common.Address) (*Intent, error) {
	if err := checkAddr(stable); err != nil {
		return nil, err
	}
	if err := checkAddr(account); err != nil {
		return nil, err
	}
	return build(vaultabi.Stable, stable, "liquidate", account)
}

func build(contract abi.ABI, to common.Address, method string, args ...any) (*Intent, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}
	return &Intent{Method: method, To: to, Data: data, Value: (*hexutil.Big)(new(big.Int))}, nil
}

func checkAddr(a common.Address) error {
	if a == (common.Address{}) {
		return ErrZeroAddress
	}
	return nil
}

func checkAmount(a *uint256.Int) error {
	if a == nil || a.IsZero() {
		return ErrInvalidAmount
	}
	return nil
}
