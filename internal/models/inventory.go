package models

import "time"

// InventoryItem is a stocked part or consumable.
type InventoryItem struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	WorkshopID    string    `bson:"workshop_id" json:"workshop_id"`
	Name          string    `bson:"name" json:"name"`
	Category      string    `bson:"category" json:"category"`
	Quantity      float64   `bson:"quantity" json:"quantity"`
	MinStockLevel float64   `bson:"min_stock_level" json:"min_stock_level"`
	SellingPrice  float64   `bson:"selling_price,omitempty" json:"selling_price,omitempty"`
	UnitPrice     float64   `bson:"unit_price,omitempty" json:"unit_price,omitempty"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// Price returns the selling price when one is set, else the unit price.
func (i *InventoryItem) Price() float64 {
	if i.SellingPrice != 0 {
		return i.SellingPrice
	}
	return i.UnitPrice
}

// StockValue is the current quantity valued at Price.
func (i *InventoryItem) StockValue() float64 {
	return i.Quantity * i.Price()
}

// IsLowStock reports whether stock has fallen to the configured minimum.
func (i *InventoryItem) IsLowStock() bool {
	return i.MinStockLevel > 0 && i.Quantity <= i.MinStockLevel
}
