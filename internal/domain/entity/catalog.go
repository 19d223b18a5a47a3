package entity

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog item as returned by the backend
type Product struct {
	ID         string                     `json:"id"`
	Code       string                     `json:"code"`
	Name       string                     `json:"name"`
	Price      decimal.Decimal            `json:"price"`
	TierPrices map[string]decimal.Decimal `json:"tier_prices,omitempty"`
}

// PriceFor returns the price of the given customer tier, falling back to
// the base price when the product has none for that tier.
func (p Product) PriceFor(tier string) decimal.Decimal {
	if tier == "" {
		return p.Price
	}
	if price, ok := p.TierPrices[tier]; ok && price.IsPositive() {
		return price
	}
	return p.Price
}

// Customer as known by the backend. DiscountPercent applies to lines added
// after the customer is selected.
type Customer struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TaxID           string          `json:"nit"`
	DiscountPercent decimal.Decimal `json:"discount"`
	PriceTier       string          `json:"price_tier,omitempty"`
	Address         string          `json:"address,omitempty"`
	Email           string          `json:"email,omitempty"`
}

// Vendor is the salesperson credited with a document
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PaymentMethod struct {
	TypeKey           string `json:"type_id"`
	Label             string `json:"label"`
	RequiresReference bool   `json:"requires_reference"`
}

// StockCheck is the backend answer to "can I sell Requested units"
type StockCheck struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	OK        bool   `json:"ok"`
}

type MinPrice struct {
	ProductID string          `json:"product_id"`
	MinPrice  decimal.Decimal `json:"min_price"`
}
