package cart

import (
	"testing"

	"tiendapos/internal/apierror"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func producto(name string, price int64) *model.Product {
	return &model.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: 100,
	}
}

func TestAddIncrementaCantidad(t *testing.T) {
	c := New()
	p := producto("Café", 1500)

	c.Add(p)
	c.Add(p)

	// Same product twice: one line with qty 2, not two lines
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, "Café", items[0].Name)
}

func TestTotalEsSumaDeLineas(t *testing.T) {
	c := New()
	cafe := producto("Café", 1500)
	pan := producto("Pan", 800)

	c.Add(cafe)
	c.Add(cafe)
	c.Add(pan)

	// 2×1500 + 1×800
	assert.Equal(t, "3800", c.Total().String())
}

func TestTotalCarritoVacio(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())
	assert.True(t, c.Empty())
}

func TestOrdenDeInsercion(t *testing.T) {
	c := New()
	a, b, d := producto("A", 1), producto("B", 2), producto("D", 3)

	c.Add(a)
	c.Add(b)
	c.Add(d)
	c.Add(b) // re-add must not reorder

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{"A", "B", "D"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestSetQuantityAbsoluta(t *testing.T) {
	c := New()
	p := producto("Café", 1500)
	c.Add(p)

	require.NoError(t, c.SetQuantity(p.ID, 5))
	assert.Equal(t, 5, c.Items()[0].Qty)
}

func TestSetQuantityNegativaRechazada(t *testing.T) {
	c := New()
	p := producto("Café", 1500)
	c.Add(p)

	err := c.SetQuantity(p.ID, -1)
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 1, c.Items()[0].Qty)
}

func TestSetQuantityCeroNoElimina(t *testing.T) {
	c := New()
	p := producto("Café", 1500)
	c.Add(p)

	// Zero is a removal request, not a removal
	err := c.SetQuantity(p.ID, 0)
	require.ErrorIs(t, err, ErrRemovalRequested)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.Items()[0].Qty)
}

func TestAdjustNoOpEnCero(t *testing.T) {
	c := New()
	p := producto("Café", 1500)
	c.Add(p)

	// qty=1, delta=-1 would hit zero: documented no-op
	require.NoError(t, c.Adjust(p.ID, -1))
	assert.Equal(t, 1, c.Items()[0].Qty)

	// A larger negative delta is equally a no-op
	require.NoError(t, c.Adjust(p.ID, -10))
	assert.Equal(t, 1, c.Items()[0].Qty)
}

func TestAdjustPositivoYNegativo(t *testing.T) {
	c := New()
	p := producto("Café", 1500)
	c.Add(p)

	require.NoError(t, c.Adjust(p.ID, 4))
	assert.Equal(t, 5, c.Items()[0].Qty)

	require.NoError(t, c.Adjust(p.ID, -3))
	assert.Equal(t, 2, c.Items()[0].Qty)
}

func TestAdjustProductoInexistente(t *testing.T) {
	c := New()
	err := c.Adjust(uuid.New(), 1)
	var nf *apierror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestRemoveElimina(t *testing.T) {
	c := New()
	a, b := producto("A", 1), producto("B", 2)
	c.Add(a)
	c.Add(b)

	c.Remove(a.ID)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Name)

	// Removing an absent line is a no-op
	c.Remove(a.ID)
	assert.Equal(t, 1, c.Len())
}

func TestClearVaciaElCarrito(t *testing.T) {
	c := New()
	c.Add(producto("A", 1))
	c.Add(producto("B", 2))

	c.Clear()

	assert.True(t, c.Empty())
	assert.Empty(t, c.Items())
	assert.True(t, c.Total().IsZero())
}

func TestItemSnapshotNoSigueAlProducto(t *testing.T) {
	c := New()
	p := producto("Café", 1500)
	c.Add(p)

	// Later product edits must not rewrite the cart line
	p.Price = decimal.NewFromInt(9999)
	p.Name = "Café premium"

	item := c.Items()[0]
	assert.Equal(t, "Café", item.Name)
	assert.Equal(t, "1500", item.Price.String())
}

func TestStorePorOperador(t *testing.T) {
	s := NewStore()
	op1, op2 := uuid.New(), uuid.New()

	s.Get(op1).Add(producto("A", 1))

	assert.Equal(t, 1, s.Get(op1).Len())
	assert.True(t, s.Get(op2).Empty())

	s.Drop(op1)
	assert.True(t, s.Get(op1).Empty())
}
