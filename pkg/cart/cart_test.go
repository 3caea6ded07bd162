package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizlzm/cashier-offline/pkg/model"
)

var (
	nasiGoreng = model.Product{ID: "p1", Name: "Nasi Goreng", Price: 25000, Category: model.CategoryFood}
	esTeh      = model.Product{ID: "p2", Name: "Es Teh", Price: 5000, Category: model.CategoryDrink}
)

func TestAddItemIncrementsExistingLine(t *testing.T) {
	c := New()
	c.AddItem(nasiGoreng)
	c.AddItem(nasiGoreng)
	c.AddItem(esTeh)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.AddItem(esTeh)

	c.UpdateQuantity("p2", 5)
	assert.Equal(t, 5, c.Items()[0].Quantity)

	c.UpdateQuantity("p2", 0)
	assert.Empty(t, c.Items(), "zero quantity removes the line")
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(nasiGoreng)
	c.AddItem(esTeh)

	c.RemoveItem("p1")
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	c.RemoveItem("missing")
	assert.Len(t, c.Items(), 1)
}

func TestTotals(t *testing.T) {
	c := New()
	c.AddItem(nasiGoreng)
	c.AddItem(nasiGoreng)
	c.AddItem(esTeh)

	assert.InDelta(t, 55000, c.Subtotal(), 0.001)
	assert.InDelta(t, 0, c.Discount(), 0.001)
	assert.InDelta(t, 6050, c.Tax(), 0.001)
	assert.InDelta(t, 61050, c.Total(), 0.001)
}

func TestSetTaxRate(t *testing.T) {
	c := New()
	c.SetTaxRate(10)
	c.AddItem(esTeh)

	assert.InDelta(t, 500, c.Tax(), 0.001)
	assert.InDelta(t, 5500, c.Total(), 0.001)
}

func TestBuildFreezesPayload(t *testing.T) {
	c := New()
	c.AddItem(nasiGoreng)

	req := c.Build(model.PaymentQRIS)
	require.Len(t, req.Items, 1)
	assert.Equal(t, model.PaymentQRIS, req.PaymentMethod)
	assert.InDelta(t, 25000, req.Subtotal, 0.001)
	assert.InDelta(t, 27750, req.Total, 0.001)

	// Later cart mutations must not leak into the built payload.
	c.AddItem(esTeh)
	c.UpdateQuantity("p1", 3)
	assert.Len(t, req.Items, 1)
	assert.Equal(t, 1, req.Items[0].Quantity)
	assert.InDelta(t, 27750, req.Total, 0.001)
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(nasiGoreng)
	c.Clear()

	assert.Empty(t, c.Items())
	assert.Zero(t, c.Subtotal())
	assert.Zero(t, c.Total())
}
