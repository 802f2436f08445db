package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fintrack/ledger/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers the route table needs
type Handlers struct {
	Ledger   *handler.LedgerHandler
	Category *handler.CategoryHandler
	Share    *handler.ShareHandler
	System   *handler.SystemHandler
	Outbox   *handler.OutboxHandler
}

// Setup registers every route on the engine. The auth middleware guards
// everything under /api/v1; health, readiness and metrics stay public.
func Setup(engine *gin.Engine, h Handlers, auth gin.HandlerFunc) {
	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	if auth != nil {
		api.Use(auth)
	}

	ledgers := api.Group("/ledgers")
	{
		ledgers.POST("", h.Ledger.Create)
		ledgers.GET("", h.Ledger.List)
		ledgers.GET("/summary", h.Ledger.GetTotalSummary)
		ledgers.GET("/:id", h.Ledger.Get)
		ledgers.PUT("/:id", h.Ledger.Update)
		ledgers.PUT("/:id/default", h.Ledger.SetDefault)
		ledgers.DELETE("/:id", h.Ledger.Delete)
		ledgers.GET("/:id/summary", h.Ledger.GetSummary)

		ledgers.POST("/:id/categories", h.Category.Create)
		ledgers.GET("/:id/categories", h.Category.List)

		ledgers.GET("/:id/shares", h.Share.ListByLedger)
	}

	categories := api.Group("/categories")
	{
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
		categories.GET("/:id/children", h.Category.ListChildren)
	}

	shares := api.Group("/shares")
	{
		shares.POST("", h.Share.Create)
		shares.PUT("/:id/accept", h.Share.Accept)
		shares.PUT("/:id/reject", h.Share.Reject)
		shares.DELETE("/:id", h.Share.Delete)
		shares.GET("/received", h.Share.ListSharedWithMe)
		shares.GET("/pending", h.Share.ListPending)
		shares.GET("/sent", h.Share.ListSent)
	}

	if h.Outbox != nil {
		outbox := api.Group("/system/outbox")
		{
			outbox.GET("/dead", h.Outbox.GetDeadLetterEntries)
			outbox.POST("/dead/retry-all", h.Outbox.RetryAllDeadEntries)
			outbox.GET("/stats", h.Outbox.GetStats)
			outbox.GET("/:id", h.Outbox.GetEntry)
			outbox.POST("/:id/retry", h.Outbox.RetryDeadEntry)
		}
	}
}
