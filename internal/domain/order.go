package domain

import "time"

// Order is a single order line: one product bought under a four digit
// order number by an eight digit customer number. Several lines may share
// an orderNo, so orderNo alone is not unique.
type Order struct {
	OrderNo       int       `json:"orderNo"       bson:"orderNo"       validate:"required,gte=1000,lte=9999"`
	OrderDate     time.Time `json:"orderDate"     bson:"orderDate"`
	CustomerNo    int       `json:"customerNo"    bson:"customerNo"    validate:"required,gte=10000000,lte=99999999"`
	PaymentMethod string    `json:"paymentMethod" bson:"paymentMethod" validate:"required,oneof=Cash Credit Debit PayPal Other"`
	ProductSKU    string    `json:"productSku"    bson:"productSku"    validate:"required,sku"`
	ProductName   string    `json:"productName"   bson:"productName"   validate:"required,productname"`
	ProductPrice  float64   `json:"productPrice"  bson:"productPrice"  validate:"gte=0"`
	Quantity      int       `json:"quantity"      bson:"quantity"      validate:"gte=1"`
	CreatedAt     time.Time `json:"createdAt"     bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"     bson:"updatedAt"`
}

// Validate checks the order line against its field rules.
func (o *Order) Validate() []FieldError {
	return Validate(o)
}
