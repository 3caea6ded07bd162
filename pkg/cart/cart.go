// Package cart assembles a sale and freezes its pricing into the payload the
// offline core queues or submits. It is a UI-thread object and not safe for
// concurrent use.
package cart

import "github.com/faizlzm/cashier-offline/pkg/model"

// Item is a product plus the quantity being sold.
type Item struct {
	ProductID   string
	ProductName string
	Price       float64
	Category    model.Category
	Quantity    int
}

// Cart holds the in-progress sale. The zero value is not usable; call New.
type Cart struct {
	taxRate float64 // percent
	items   []Item
}

// DefaultTaxRate is the fallback tax percentage.
const DefaultTaxRate = 11

func New() *Cart {
	return &Cart{taxRate: DefaultTaxRate}
}

// SetTaxRate overrides the tax percentage.
func (c *Cart) SetTaxRate(rate float64) { c.taxRate = rate }

// AddItem adds one unit of the product, incrementing an existing line.
func (c *Cart) AddItem(p model.Product) {
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{
		ProductID:   p.ID,
		ProductName: p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Quantity:    1,
	})
}

// RemoveItem drops the product's line entirely.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() { c.items = nil }

// Items returns a copy of the current lines.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// Discount is currently always zero; kept as a seam for promotions.
func (c *Cart) Discount() float64 { return 0 }

func (c *Cart) Tax() float64 {
	return (c.Subtotal() - c.Discount()) * c.taxRate / 100
}

func (c *Cart) Total() float64 {
	return c.Subtotal() - c.Discount() + c.Tax()
}

// Build freezes the cart into a transaction-creation payload. The caller
// owns the result; later cart mutations do not affect it.
func (c *Cart) Build(method model.PaymentMethod) *model.CreateTransactionRequest {
	items := make([]model.CreateTransactionItem, len(c.items))
	for i, item := range c.items {
		items[i] = model.CreateTransactionItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Category:    item.Category,
		}
	}
	return &model.CreateTransactionRequest{
		Items:         items,
		Subtotal:      c.Subtotal(),
		Tax:           c.Tax(),
		Discount:      c.Discount(),
		Total:         c.Total(),
		PaymentMethod: method,
	}
}
