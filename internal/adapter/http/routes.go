package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes bundles the handlers mounted on the API.
type Routes struct {
	Health *Handler
	Borrow *BorrowHandler
	Intent *IntentHandler
	// applied to the /intents group only
	Idempotency echo.MiddlewareFunc
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v := e.Group("/vaults/:vault")
	v.GET("/borrowers/:address/records", r.Borrow.Records)
	v.GET("/liquidations", r.Borrow.Liquidations)
	v.GET("/info", r.Borrow.Info)
	v.GET("/liquidation-quote", r.Borrow.LiquidationQuote)

	var mw []echo.MiddlewareFunc
	if r.Idempotency != nil {
		mw = append(mw, r.Idempotency)
	}
	in := e.Group("/intents", mw...)
	in.POST("/borrow", r.Intent.Borrow)
	in.POST("/repay", r.Intent.Repay)
	in.POST("/pledge", r.Intent.IncreasePledge)
	in.POST("/liquidate", r.Intent.Liquidate)
}
