// Package money formatea importes según la configuración regional (solo presentación).
package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter convierte decimales en texto de moneda, ej. "R$ 11,00" para pt-BR/BRL.
type Formatter struct {
	unit    currency.Unit
	symbol  string
	group   string // separador de miles del locale ("" si no agrupa)
	decimal string // separador decimal del locale
}

// NewFormatter construye el formateador a partir de un locale BCP 47 y un código ISO 4217.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("moneda %q: %w", code, err)
	}
	p := message.NewPrinter(tag)
	group, dec := separators(p)
	return &Formatter{
		unit:    unit,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
		group:   group,
		decimal: dec,
	}, nil
}

// separators obtiene los separadores del locale formateando un valor de muestra,
// ej. "1.234,5" en pt-BR o "1,234.5" en en-US.
func separators(p *message.Printer) (group, dec string) {
	var seps []string
	for _, r := range p.Sprint(number.Decimal(1234.5, number.Scale(1))) {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	switch len(seps) {
	case 0:
		return "", "."
	case 1:
		return "", seps[0]
	default:
		return seps[0], seps[len(seps)-1]
	}
}

// MustFormatter como NewFormatter pero entra en pánico ante error (valores fijos en tests y defaults).
func MustFormatter(locale, code string) *Formatter {
	f, err := NewFormatter(locale, code)
	if err != nil {
		panic(err)
	}
	return f
}

// Format devuelve el importe con símbolo y dos decimales, sin pasar por float64.
func (f *Formatter) Format(v decimal.Decimal) string {
	fixed := v.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	return f.symbol + " " + sign + groupThousands(intPart, f.group) + f.decimal + frac
}

// groupThousands inserta sep cada tres dígitos desde la derecha.
// Ej: "25000" -> "25.000", "1000000" -> "1.000.000"
func groupThousands(digits, sep string) string {
	n := len(digits)
	if sep == "" || n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n/3)*len(sep))
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// Code devuelve el código ISO de la moneda.
func (f *Formatter) Code() string { return f.unit.String() }
