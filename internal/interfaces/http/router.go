package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stok-api/internal/application/inventory"
	"github.com/jhoicas/stok-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.LedgerUseCase
	Balances  *inventory.BalanceUseCase
	Cards     *inventory.StockCardUseCase
	Resolver  *inventory.VariantResolver
	Imports   *inventory.ImportUseCase
	Opname    *inventory.OpnameUseCase
	Locations *inventory.LocationUseCase
	CardPDF   StockCardRenderer
	Currency  string
	JWTSecret string
	JWTIssuer string
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	readers := RequireRole(jwt.RoleAdmin, jwt.RoleStaff, jwt.RoleViewer)
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleStaff)
	admins := RequireRole(jwt.RoleAdmin)

	// Locations
	locationHandler := NewLocationHandler(deps.Locations, deps.Log)
	locations := api.Group("/locations")
	locations.Get("/", readers, locationHandler.List)
	locations.Get("/:id", readers, locationHandler.GetByID)

	// Stock: ledger, traslados, saldos, tarjetas, import
	stockHandler := NewStockHandler(StockHandlerDeps{
		Ledger:   deps.Ledger,
		Balances: deps.Balances,
		Cards:    deps.Cards,
		Resolver: deps.Resolver,
		Imports:  deps.Imports,
		CardPDF:  deps.CardPDF,
		Currency: deps.Currency,
		Log:      deps.Log,
	})
	stock := api.Group("/stock")
	stock.Post("/movements", writers, stockHandler.CreateMovement)
	stock.Get("/movements", readers, stockHandler.ListMovements)
	stock.Post("/transfers", writers, stockHandler.Transfer)
	stock.Get("/balances", readers, stockHandler.Balances)
	stock.Get("/balances/export.xlsx", readers, stockHandler.ExportBalances)
	stock.Get("/cards/:variant_id/:location_id", readers, stockHandler.StockCard)
	stock.Get("/cards/:variant_id/:location_id/pdf", readers, stockHandler.StockCardPDF)
	stock.Post("/variants/resolve", writers, stockHandler.ResolveVariant)
	stock.Delete("/variants/:id", admins, stockHandler.DeleteVariant)
	stock.Post("/imports", writers, stockHandler.Import)
	stock.Get("/integrity", admins, stockHandler.Integrity)

	// Stock opname
	opnameHandler := NewOpnameHandler(deps.Opname, deps.Log)
	opname := api.Group("/opname")
	opname.Post("/", writers, opnameHandler.Start)
	opname.Get("/", readers, opnameHandler.List)
	opname.Get("/:id", readers, opnameHandler.Get)
	opname.Put("/:id/counts", writers, opnameHandler.UpdateCount)
	opname.Post("/:id/items", writers, opnameHandler.AddItem)
	opname.Post("/:id/commit", writers, opnameHandler.Commit)
	opname.Post("/:id/cancel", writers, opnameHandler.Cancel)
}
