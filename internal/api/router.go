package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Author-Ledger-Backend/internal/api/middleware"
	"github.com/ndewijer/Author-Ledger-Backend/internal/config"
	"github.com/ndewijer/Author-Ledger-Backend/internal/service"
)

// Services bundles the services the router dispatches to.
type Services struct {
	System    *service.SystemService
	Book      *service.BookService
	Expense   *service.ExpenseService
	Sale      *service.SaleService
	Analytics *service.AnalyticsService
	Snapshot  *service.SnapshotService
}

// NewRouter creates and configures the HTTP router.
// Reads are open; every mutating route requires the API key and a time token.
func NewRouter(svc Services, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svc.System)
	bookHandler := handlers.NewBookHandler(svc.Book, svc.Analytics)
	expenseHandler := handlers.NewExpenseHandler(svc.Expense)
	saleHandler := handlers.NewSaleHandler(svc.Sale)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics, svc.Snapshot)

	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/book", func(r chi.Router) {
			r.Get("/", bookHandler.GetBooks)
			r.With(custommiddleware.APIKeyMiddleware).Post("/", bookHandler.CreateBook)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", bookHandler.GetBook)
				r.Get("/report", bookHandler.Report)
				r.Get("/totals", bookHandler.Totals)
				r.Get("/channels", bookHandler.Channels)

				r.Group(func(r chi.Router) {
					r.Use(custommiddleware.APIKeyMiddleware)
					r.Put("/", bookHandler.UpdateBook)
					r.Delete("/", bookHandler.DeleteBook)
				})
			})
		})

		r.Route("/expense", func(r chi.Router) {
			r.Get("/", expenseHandler.GetExpenses)
			r.With(custommiddleware.APIKeyMiddleware).Post("/", expenseHandler.CreateExpense)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", expenseHandler.GetExpense)

				r.Group(func(r chi.Router) {
					r.Use(custommiddleware.APIKeyMiddleware)
					r.Put("/", expenseHandler.UpdateExpense)
					r.Delete("/", expenseHandler.DeleteExpense)
				})
			})
		})

		r.Route("/sale", func(r chi.Router) {
			r.Get("/", saleHandler.GetSales)
			r.With(custommiddleware.APIKeyMiddleware).Post("/", saleHandler.CreateSale)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", saleHandler.GetSale)

				r.Group(func(r chi.Router) {
					r.Use(custommiddleware.APIKeyMiddleware)
					r.Put("/", saleHandler.UpdateSale)
					r.Delete("/", saleHandler.DeleteSale)
				})
			})
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/totals", analyticsHandler.Totals)
			r.Get("/channels", analyticsHandler.Channels)
			r.Get("/monthly", analyticsHandler.Monthly)
			r.Get("/overview", analyticsHandler.Overview)
			r.Get("/snapshots", analyticsHandler.Snapshots)
			r.With(custommiddleware.APIKeyMiddleware).Post("/snapshots/refresh", analyticsHandler.RefreshSnapshots)
			r.With(custommiddleware.ValidateUUIDMiddleware).Get("/snapshots/{uuid}", analyticsHandler.Snapshot)
		})
	})

	return r
}
