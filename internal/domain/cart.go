package domain

import "time"

// CartItem is one product line inside a cart. The product fields are
// denormalized at add time so a cart survives later catalog edits.
type CartItem struct {
	SKU      string  `json:"sku"      bson:"sku"      validate:"required,sku"`
	Name     string  `json:"name"     bson:"name"     validate:"required,productname"`
	Price    float64 `json:"price"    bson:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" bson:"quantity" validate:"gte=1"`
}

// Cart is an open shopping cart for a customer.
type Cart struct {
	ID         string     `json:"id"         bson:"cartId"     validate:"required,uuid"`
	CustomerNo int        `json:"customerNo" bson:"customerNo" validate:"required,gte=10000000,lte=99999999"`
	Items      []CartItem `json:"items"      bson:"items"      validate:"required,min=1,dive"`
	CreatedAt  time.Time  `json:"createdAt"  bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"  bson:"updatedAt"`
}

// Validate checks the cart and every line item.
func (c *Cart) Validate() []FieldError {
	return Validate(c)
}
