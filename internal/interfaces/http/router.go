package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/listcalc/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ListUC *usecase.ShoppingListUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	items := api.Group("/items")
	h := NewItemHandler(deps.ListUC)
	items.Get("/", h.List)
	items.Post("/", h.Create)
	items.Delete("/", h.Clear)
	// rutas fijas antes de /:id
	items.Get("/summary", h.Summary)
	items.Get("/export.pdf", h.ExportPDF)
	items.Get("/:id", h.GetByID)
	items.Put("/:id", h.Update)
	items.Delete("/:id", h.Delete)
	items.Patch("/:id/quantity", h.UpdateQuantity)
	items.Post("/:id/increment", h.Increment)
	items.Post("/:id/decrement", h.Decrement)
}
