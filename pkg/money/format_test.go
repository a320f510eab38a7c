package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/listcalc/pkg/money"
)

func TestFormat_RealBrasileno(t *testing.T) {
	f, err := money.NewFormatter("pt-BR", "BRL")
	require.NoError(t, err)

	out := f.Format(decimal.RequireFromString("11"))
	assert.Contains(t, out, "R$")
	assert.Contains(t, out, "11,00")
	assert.Equal(t, "BRL", f.Code())
}

func TestFormat_RedondeaADosDecimales(t *testing.T) {
	f := money.MustFormatter("en-US", "USD")
	assert.Contains(t, f.Format(decimal.RequireFromString("1234.5")), "1,234.50")
	assert.Contains(t, f.Format(decimal.RequireFromString("0.995")), "1.00")
}

func TestFormat_ValoresGrandesExactos(t *testing.T) {
	f := money.MustFormatter("pt-BR", "BRL")
	assert.Equal(t, "R$ 123.456.789.012.345.678,99", f.Format(decimal.RequireFromString("123456789012345678.99")))
	assert.Equal(t, "R$ 999.999.999.999.999.999.999.999,00", f.Format(decimal.RequireFromString("999999999999999999999999")))
	assert.Equal(t, "R$ 0,00", f.Format(decimal.Zero))
	assert.Equal(t, "R$ -9,00", f.Format(decimal.NewFromInt(-9)))

	us := money.MustFormatter("en-US", "USD")
	assert.Equal(t, "$ 1,000,000.01", us.Format(decimal.RequireFromString("1000000.005")))
}

func TestNewFormatter_Invalido(t *testing.T) {
	_, err := money.NewFormatter("pt-BR", "XYZW")
	assert.Error(t, err)
	_, err = money.NewFormatter("??", "BRL")
	assert.Error(t, err)
}
