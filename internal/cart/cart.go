// Package cart holds the in-progress sale for one operator session. A cart is
// transient state: it is never persisted and is destroyed on commit or
// explicit cancellation. Each cart is mutated by a single operator
// sequentially; the Store guards only the session lookup.
package cart

import (
	"errors"

	"tiendapos/internal/apierror"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrRemovalRequested is returned by SetQuantity(id, 0): quantity zero is a
// removal request that the caller must confirm via Remove. The cart never
// deletes a line silently.
var ErrRemovalRequested = errors.New("cantidad cero: confirma la eliminación del producto")

// Item is a product snapshot plus quantity. Qty is always ≥ 1.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Icon      string          `json:"icon"`
	Qty       int             `json:"qty"`
}

// Cart is an insertion-ordered mapping of product id → line item, unique by
// product id.
type Cart struct {
	lines map[uuid.UUID]*Item
	order []uuid.UUID
}

func New() *Cart {
	return &Cart{lines: make(map[uuid.UUID]*Item)}
}

// Add increments the existing line for the product by 1, or inserts a new
// line with quantity 1. The product's name, price, and icon are snapshotted
// on first insert.
func (c *Cart) Add(p *model.Product) {
	if line, ok := c.lines[p.ID]; ok {
		line.Qty++
		return
	}
	c.lines[p.ID] = &Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Icon:      p.Icon,
		Qty:       1,
	}
	c.order = append(c.order, p.ID)
}

// SetQuantity sets an absolute quantity. Zero is a removal request
// (ErrRemovalRequested); negative quantities are rejected.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) error {
	line, ok := c.lines[productID]
	if !ok {
		return apierror.NotFound("Producto")
	}
	if qty < 0 {
		return apierror.Validation("La cantidad no puede ser negativa")
	}
	if qty == 0 {
		return ErrRemovalRequested
	}
	line.Qty = qty
	return nil
}

// Adjust applies a relative change. When the result would drop to zero or
// below, the quantity is left unchanged: decrementing via the stepper never
// removes a line, only an explicit Remove does.
func (c *Cart) Adjust(productID uuid.UUID, delta int) error {
	line, ok := c.lines[productID]
	if !ok {
		return apierror.NotFound("Producto")
	}
	if next := line.Qty + delta; next > 0 {
		line.Qty = next
	}
	return nil
}

// Remove deletes the line unconditionally. Removing an absent line is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. Called after commit and on explicit cancellation.
func (c *Cart) Clear() {
	c.lines = make(map[uuid.UUID]*Item)
	c.order = nil
}

// Items returns the lines in insertion order. The slice holds copies.
func (c *Cart) Items() []Item {
	items := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.lines[id])
	}
	return items
}

// Total is Σ(price × qty) over current lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		line := c.lines[id]
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return total
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

func (c *Cart) Len() int { return len(c.lines) }
