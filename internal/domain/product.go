package domain

import "time"

// Product is a grocery item identified by its SKU (format XX-1234-56).
type Product struct {
	SKU         string    `json:"sku"         bson:"sku"         validate:"required,sku"`
	Name        string    `json:"name"        bson:"name"        validate:"required,productname"`
	Price       float64   `json:"price"       bson:"price"       validate:"gte=0"`
	StockOnHand int       `json:"stockOnHand" bson:"stockOnHand" validate:"gte=0"`
	CreatedAt   time.Time `json:"createdAt"   bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"   bson:"updatedAt"`
}

// ProductPatch carries the mutable product fields for partial updates.
// Nil pointers mean "leave unchanged"; the SKU is immutable by design.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"        validate:"omitempty,productname"`
	Price       *float64 `json:"price,omitempty"       validate:"omitempty,gte=0"`
	StockOnHand *int     `json:"stockOnHand,omitempty" validate:"omitempty,gte=0"`
}

// Empty reports whether the patch carries no fields at all.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.StockOnHand == nil
}

// Validate checks the product against its field rules.
func (p *Product) Validate() []FieldError {
	return Validate(p)
}
