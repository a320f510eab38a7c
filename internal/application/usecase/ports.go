package usecase

import (
	"context"
	"time"
)

// ListPDFGenerator genera la versión imprimible de la lista (puerto hacia infraestructura).
type ListPDFGenerator interface {
	GenerateListPDF(ctx context.Context, doc ListDocument) ([]byte, error)
}

// ListDocument datos ya formateados para el PDF.
type ListDocument struct {
	Title       string
	GeneratedAt time.Time
	Lines       []ListDocumentLine
	Count       int
	Total       string
}

// ListDocumentLine una fila de la tabla del PDF.
type ListDocumentLine struct {
	Quantity  string
	Name      string
	UnitPrice string
	LineTotal string
}
