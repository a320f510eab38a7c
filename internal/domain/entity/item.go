package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/listcalc/internal/domain"
)

// Límites de precio y cantidad. Acotan el exponente de los decimales para que
// LineTotal y Total no desborden ni reserven memoria desproporcionada.
const (
	MaxIntegerDigits = 12 // valor absoluto < 10^12
	MaxScale         = 8  // hasta 8 decimales
)

// Item representa un producto de la lista de compras.
// LineTotal no se almacena; se recalcula en cada lectura.
type Item struct {
	ID        string          // opaco e inmutable; identifica el ítem entre ediciones
	Name      string          // recortado, nunca vacío
	UnitPrice decimal.Decimal // >= 0, por defecto 0
	Quantity  decimal.Decimal // >= 0, admite fracciones
}

// LineTotal devuelve UnitPrice * Quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(i.Quantity)
}

// DisplayQuantity devuelve la cantidad truncada a entero, como se muestra en pantalla.
func (i Item) DisplayQuantity() int64 {
	return i.Quantity.Truncate(0).IntPart()
}

// Equal compara todos los campos almacenados (decimales por valor, no por representación).
func (i Item) Equal(o Item) bool {
	return i.ID == o.ID &&
		i.Name == o.Name &&
		i.UnitPrice.Equal(o.UnitPrice) &&
		i.Quantity.Equal(o.Quantity)
}

// Validate exige nombre no vacío y precio/cantidad no negativos dentro de los límites.
// Los errores envuelven domain.ErrInvalidInput.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
	}
	if err := CheckAmount("precio unitario", i.UnitPrice); err != nil {
		return err
	}
	return CheckAmount("cantidad", i.Quantity)
}

// CheckAmount valida un precio o cantidad: no negativo, menos de MaxIntegerDigits
// dígitos enteros y como mucho MaxScale decimales. Solo mira exponente y dígitos,
// nunca reescala el valor.
func CheckAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%s negativo: %w", field, domain.ErrInvalidInput)
	}
	exp := int64(d.Exponent())
	if exp < -MaxScale || exp > MaxIntegerDigits {
		return fmt.Errorf("%s fuera de rango: %w", field, domain.ErrInvalidInput)
	}
	if int64(d.NumDigits())+exp > MaxIntegerDigits {
		return fmt.Errorf("%s fuera de rango: %w", field, domain.ErrInvalidInput)
	}
	return nil
}
