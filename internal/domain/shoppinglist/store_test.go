package shoppinglist_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/listcalc/internal/domain"
	"github.com/jhoicas/listcalc/internal/domain/entity"
	"github.com/jhoicas/listcalc/internal/domain/shoppinglist"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func mustAdd(t *testing.T, s *shoppinglist.Store, name, price, qty string) entity.Item {
	t.Helper()
	var p, q *decimal.Decimal
	if price != "" {
		p = dec(price)
	}
	if qty != "" {
		q = dec(qty)
	}
	it, err := s.Add(name, p, q)
	require.NoError(t, err)
	return it
}

func names(items []entity.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_ApareceEnFiltroVacioConTotalDeLinea(t *testing.T) {
	cases := []struct {
		name, price, qty string
		lineTotal        string
	}{
		{"Arroz", "5.50", "2", "11"},
		{"Feijão", "7.25", "1.5", "10.875"},
		{"Sal", "", "", "0"},
		{"Azeite", "32.90", "", "0"},
		{"Ovos", "", "12", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := shoppinglist.NewStore()
			it := mustAdd(t, s, tc.name, tc.price, tc.qty)

			all := s.Filter("")
			require.Len(t, all, 1)
			assert.Equal(t, tc.name, all[0].Name)
			assert.Equal(t, it.ID, all[0].ID)
			assert.True(t, decimal.RequireFromString(tc.lineTotal).Equal(all[0].LineTotal()),
				"total de línea esperado %s, obtenido %s", tc.lineTotal, all[0].LineTotal())
		})
	}
}

func TestAdd_RecortaNombreYGeneraIDUnico(t *testing.T) {
	s := shoppinglist.NewStore()
	a := mustAdd(t, s, "  Leite  ", "4", "1")
	b := mustAdd(t, s, "Leite", "4", "1")

	assert.Equal(t, "Leite", a.Name)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []string{"Leite", "Leite"}, names(s.Items()))
}

func TestAdd_RechazaNombreVacioSinMutar(t *testing.T) {
	s := shoppinglist.NewStore()
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.Add(name, nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
	assert.Equal(t, 0, s.Count())
}

func TestAdd_RechazaValoresNegativos(t *testing.T) {
	s := shoppinglist.NewStore()
	_, err := s.Add("Pão", dec("-1"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.Add("Pão", nil, dec("-0.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, s.Count())
}

func TestValoresFueraDeRango_RechazadosSinMutar(t *testing.T) {
	s := shoppinglist.NewStore()
	it := mustAdd(t, s, "Pão", "1", "1")

	_, err := s.Add("Enorme", dec("1e1200000000"), dec("1e1200000000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = s.Add("Precisión", dec("0.000000001"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.Replace(it.ID, entity.Item{Name: "Pão", UnitPrice: *dec("1e20"), Quantity: *dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = s.UpdateQuantity(it.ID, *dec("1e1200000000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.Equal(t, 1, s.Count())
	assert.True(t, decimal.NewFromInt(1).Equal(s.Total()))
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateQuantity / Replace / Remove
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateQuantity_NegativaEsNoOp(t *testing.T) {
	s := shoppinglist.NewStore()
	it := mustAdd(t, s, "Café", "18", "2")

	list, err := s.UpdateQuantity(it.ID, decimal.NewFromInt(-1))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(list[0].Quantity))
}

func TestUpdateQuantity_AsignaValorExacto(t *testing.T) {
	s := shoppinglist.NewStore()
	a := mustAdd(t, s, "Café", "18", "2")
	b := mustAdd(t, s, "Açúcar", "5", "1")

	list, err := s.UpdateQuantity(a.ID, decimal.RequireFromString("0.75"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.75").Equal(list[0].Quantity))
	assert.Equal(t, "Café", list[0].Name)
	assert.True(t, decimal.NewFromInt(18).Equal(list[0].UnitPrice))
	assert.True(t, b.Equal(list[1]), "los demás ítems no cambian")

	list, err = s.UpdateQuantity(a.ID, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, list[0].Quantity.IsZero())
}

func TestUpdateQuantity_IDInexistente(t *testing.T) {
	s := shoppinglist.NewStore()
	it := mustAdd(t, s, "Café", "18", "2")

	list, err := s.UpdateQuantity("no-existe", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.Len(t, list, 1)
	assert.True(t, it.Equal(list[0]))
}

func TestReplace_ConservaPosicionEID(t *testing.T) {
	s := shoppinglist.NewStore()
	mustAdd(t, s, "A", "1", "1")
	b := mustAdd(t, s, "B", "2", "2")
	mustAdd(t, s, "C", "3", "3")

	list, err := s.Replace(b.ID, entity.Item{
		ID:        "ignorado",
		Name:      " B editado ",
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  decimal.RequireFromString("0.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B editado", "C"}, names(list))
	assert.Equal(t, b.ID, list[1].ID)
	assert.True(t, decimal.NewFromInt(5).Equal(list[1].LineTotal()))

	got, ok := s.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, "B editado", got.Name)
}

func TestReplace_NoEncontradoNoModifica(t *testing.T) {
	s := shoppinglist.NewStore()
	a := mustAdd(t, s, "A", "1", "1")

	list, err := s.Replace("otro", entity.Item{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.Len(t, list, 1)
	assert.True(t, a.Equal(list[0]))
}

func TestReplace_NombreVacioRechazado(t *testing.T) {
	s := shoppinglist.NewStore()
	a := mustAdd(t, s, "A", "1", "1")

	_, err := s.Replace(a.ID, entity.Item{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	got, _ := s.Get(a.ID)
	assert.Equal(t, "A", got.Name)
}

func TestRemove_EliminaUnoYReindexa(t *testing.T) {
	s := shoppinglist.NewStore()
	a := mustAdd(t, s, "A", "1", "1")
	b := mustAdd(t, s, "B", "2", "1")
	c := mustAdd(t, s, "C", "3", "1")

	require.NoError(t, s.Remove(a.ID))
	assert.Equal(t, []string{"B", "C"}, names(s.Items()))

	// el índice debe seguir apuntando bien después de desplazar posiciones
	_, err := s.UpdateQuantity(c.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	got, ok := s.Get(c.ID)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(12).Equal(got.LineTotal()))

	assert.ErrorIs(t, s.Remove(a.ID), domain.ErrNotFound)
	require.NoError(t, s.RemoveAt(0))
	_, ok = s.Get(b.ID)
	assert.False(t, ok)
	assert.Equal(t, []string{"C"}, names(s.Items()))
}

func TestRemoveAt_FueraDeRango(t *testing.T) {
	s := shoppinglist.NewStore()
	mustAdd(t, s, "A", "1", "1")
	assert.ErrorIs(t, s.RemoveAt(-1), domain.ErrNotFound)
	assert.ErrorIs(t, s.RemoveAt(1), domain.ErrNotFound)
	assert.Equal(t, 1, s.Count())
}

func TestClear(t *testing.T) {
	s := shoppinglist.NewStore()
	a := mustAdd(t, s, "A", "1", "1")
	mustAdd(t, s, "B", "1", "1")

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.True(t, s.Total().IsZero())
	_, ok := s.Get(a.ID)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filter / Total / Count
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_SinDistinguirMayusculasEnOrden(t *testing.T) {
	s := shoppinglist.NewStore()
	mustAdd(t, s, "Milk", "", "")
	mustAdd(t, s, "Bread", "", "")
	mustAdd(t, s, "milk chocolate", "", "")

	assert.Equal(t, []string{"Milk", "milk chocolate"}, names(s.Filter("milk")))
	assert.Equal(t, []string{"Milk", "milk chocolate"}, names(s.Filter("MILK")))
	assert.Equal(t, []string{"milk chocolate"}, names(s.Filter("Choc")))
	assert.Empty(t, s.Filter("queijo"))
	assert.Equal(t, []string{"Milk", "Bread", "milk chocolate"}, names(s.Filter("")))
	assert.Equal(t, []string{"Milk", "Bread", "milk chocolate"}, names(s.Filter("   ")))
}

func TestMatch_PosicionesEnListaCompleta(t *testing.T) {
	s := shoppinglist.NewStore()
	mustAdd(t, s, "Pão", "", "")
	mustAdd(t, s, "Milk", "", "")
	mustAdd(t, s, "Bread", "", "")
	mustAdd(t, s, "milk chocolate", "", "")

	assert.Equal(t, []int{1, 3}, s.Match("milk"))
	assert.Equal(t, []int{0, 1, 2, 3}, s.Match(""))
	assert.Empty(t, s.Match("queijo"))

	it, ok := s.At(3)
	require.True(t, ok)
	assert.Equal(t, "milk chocolate", it.Name)
	_, ok = s.At(4)
	assert.False(t, ok)

	pos, ok := s.Position(it.ID)
	require.True(t, ok)
	assert.Equal(t, 3, pos)
}

func TestFilter_NoMutaLaLista(t *testing.T) {
	s := shoppinglist.NewStore()
	mustAdd(t, s, "Maçã", "", "")
	mustAdd(t, s, "MAÇÃ verde", "", "")

	out := s.Filter("maçã")
	require.Len(t, out, 2)
	out[0].Name = "cambiado"
	assert.Equal(t, "Maçã", s.Items()[0].Name)
}

func TestTotal_IgualASumaDeLineas(t *testing.T) {
	s := shoppinglist.NewStore()
	assert.True(t, s.Total().IsZero(), "lista vacía suma 0")

	a := mustAdd(t, s, "A", "1.10", "3")
	b := mustAdd(t, s, "B", "2.35", "2")
	mustAdd(t, s, "C", "0.99", "0.5")
	_, err := s.UpdateQuantity(b.ID, decimal.NewFromInt(4))
	require.NoError(t, err)
	require.NoError(t, s.Remove(a.ID))

	want := decimal.Zero
	for _, it := range s.Items() {
		want = want.Add(it.UnitPrice.Mul(it.Quantity))
	}
	assert.True(t, want.Equal(s.Total()))
	assert.True(t, decimal.RequireFromString("9.895").Equal(s.Total()))
}

// Escenario de referencia: Arroz, Feijão, cambio de cantidad y borrado.
func TestEscenario_ArrozYFeijao(t *testing.T) {
	s := shoppinglist.NewStore()

	rice := mustAdd(t, s, "Rice", "5.50", "2")
	assert.True(t, decimal.RequireFromString("11.00").Equal(s.Total()))

	beans := mustAdd(t, s, "Beans", "0", "0")
	assert.True(t, decimal.RequireFromString("11.00").Equal(s.Total()))
	assert.Equal(t, 2, s.Count())

	_, err := s.UpdateQuantity(beans.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Count())
	got, _ := s.Get(beans.ID)
	assert.True(t, got.LineTotal().IsZero())

	require.NoError(t, s.Remove(rice.ID))
	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 1, s.Count())
}

// ──────────────────────────────────────────────────────────────────────────────
// ReplaceAll / Subscribe
// ──────────────────────────────────────────────────────────────────────────────

func TestReplaceAll_CopiaYIndexa(t *testing.T) {
	s := shoppinglist.NewStore()
	in := []entity.Item{
		{ID: "1", Name: "Uno", UnitPrice: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)},
		{ID: "2", Name: "Dos", UnitPrice: decimal.NewFromInt(2), Quantity: decimal.NewFromInt(1)},
	}
	s.ReplaceAll(in)
	in[0].Name = "mutado fuera"

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Uno", got.Name)
	assert.Equal(t, 2, s.Count())
}

func TestReplaceAll_IDDuplicadoGanaPrimero(t *testing.T) {
	s := shoppinglist.NewStore()
	s.ReplaceAll([]entity.Item{
		{ID: "x", Name: "Primero"},
		{ID: "x", Name: "Segundo"},
	})
	got, ok := s.Get("x")
	require.True(t, ok)
	assert.Equal(t, "Primero", got.Name)
}

func TestSubscribe_NotificaCadaMutacion(t *testing.T) {
	s := shoppinglist.NewStore()
	var counts []int
	unsubscribe := s.Subscribe(func(items []entity.Item) {
		counts = append(counts, len(items))
	})

	a := mustAdd(t, s, "A", "1", "1")
	mustAdd(t, s, "B", "1", "1")
	_, _ = s.UpdateQuantity(a.ID, decimal.NewFromInt(2))
	_, _ = s.UpdateQuantity(a.ID, decimal.NewFromInt(-2)) // no-op, sin aviso
	_, _ = s.Replace("nada", entity.Item{Name: "X"})      // no encontrado, sin aviso
	require.NoError(t, s.Remove(a.ID))
	s.Clear()

	assert.Equal(t, []int{1, 2, 2, 1, 0}, counts)

	unsubscribe()
	mustAdd(t, s, "C", "1", "1")
	assert.Len(t, counts, 5, "tras darse de baja no recibe más avisos")
}
