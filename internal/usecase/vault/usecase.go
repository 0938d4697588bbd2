package vault

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	domain "stablevault-backend/internal/domain/vault"
	"stablevault-backend/internal/infrastructure/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidAmount = errors.New("amount must be positive")

// Cache is the JSON cache used for vault parameters.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Usecase struct {
	reader  domain.Reader
	cache   Cache
	ttl     time.Duration
	metrics *metrics.VaultMetrics
}

// NewUsecase builds the vault parameter reader. cache may be nil, in which
// case every call goes to the ledger.
func NewUsecase(r domain.Reader, c Cache, ttl time.Duration) *Usecase {
	return &Usecase{reader: r, cache: c, ttl: ttl, metrics: metrics.Vault()}
}

func infoKey(v common.Address) string { return "vault:info:" + strings.ToLower(v.Hex()) }

// Info returns the vault's rates, collateral price and management fee.
// Cache failures are logged and fall through to the ledger.
func (u *Usecase) Info(ctx context.Context, v common.Address) (*domain.Info, error) {
	key := infoKey(v)
	if u.cache != nil {
		var cached domain.Info
		ok, err := u.cache.GetJSON(ctx, key, &cached)
		switch {
		case err != nil:
			zap.L().Warn("vault info cache read failed", zap.String("vault", v.Hex()), zap.Error(err))
		case ok:
			u.metrics.ObserveVaultInfo("hit")
			return &cached, nil
		}
	}
	u.metrics.ObserveVaultInfo("miss")

	var (
		rates      domain.RawRates
		price, fee *big.Int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rates, err = u.reader.Rates(gctx, v)
		return err
	})
	g.Go(func() (err error) {
		price, err = u.reader.Price(gctx, v)
		return err
	})
	g.Go(func() (err error) {
		fee, err = u.reader.Fee(gctx, v)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	info := &domain.Info{
		LTVRate:         domain.Ratio(rates.LTV, domain.DefaultLTVRate),
		LiquidationRate: domain.Ratio(rates.Liquidation, domain.DefaultLiquidationRate),
		InterestRate:    domain.Ratio(rates.Interest, domain.DefaultInterestRate),
		Price:           amount(price),
		Fee:             amount(fee),
	}

	if u.cache != nil && u.ttl > 0 {
		if err := u.cache.SetJSON(ctx, key, info, u.ttl); err != nil {
			zap.L().Warn("vault info cache write failed", zap.String("vault", v.Hex()), zap.Error(err))
		}
	}
	return info, nil
}

// LiquidationQuote returns the collateral received for repaying amt of the
// stable token.
func (u *Usecase) LiquidationQuote(ctx context.Context, v common.Address, amt *big.Int) (decimal.Decimal, error) {
	if amt == nil || amt.Sign() <= 0 {
		return decimal.Zero, ErrInvalidAmount
	}
	out, err := u.reader.LiquidationQuote(ctx, v, amt)
	if err != nil {
		return decimal.Zero, err
	}
	return amount(out), nil
}

func amount(b *big.Int) decimal.Decimal {
	if b == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(b, 0)
}
