package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Records are immutable once validated: a record is constructed fresh from a
// row, validated as a whole, handed to the loader, and discarded. Optional
// fields are pointers so that an absent value stays distinguishable from a
// legitimate zero or empty string.

// Product is one catalog product. Primary key ProductID.
type Product struct {
	ProductID     int64 `validate:"required,gt=0"`
	ProductName   *string
	Description   *string
	SKU           *string
	CategoryID    *int64
	SupplierID    *int64
	Price         *float64 `validate:"omitempty,gte=0"`
	StockQuantity *int64   `validate:"omitempty,gte=0"`
	ImagePath     *string
	DateAdded     *time.Time
}

// Category is one product category. Primary key CategoryID.
type Category struct {
	CategoryID   int64 `validate:"required,gt=0"`
	CategoryName *string
	Description  *string
}

// Customer is one e-commerce customer. Primary key CustomerID.
type Customer struct {
	CustomerID       int64 `validate:"required,gt=0"`
	FirstName        *string
	LastName         *string
	Email            *string `validate:"omitempty,email"`
	PhoneNumber      *string
	ShippingAddress  *string
	BillingAddress   *string
	RegistrationDate *time.Time
	LastLoginDate    *time.Time
}

// Order is one customer order. Primary key OrderID; CustomerID is an
// optional foreign key whose existence is only checked by the store at
// relationship merge time.
type Order struct {
	OrderID         int64 `validate:"required,gt=0"`
	CustomerID      *int64
	OrderDate       *time.Time
	OrderStatus     *string
	TotalAmount     *float64 `validate:"omitempty,gte=0"`
	ShippingAddress *string
	BillingAddress  *string
}

// OrderItem is one line of an order. It is not loaded as a node: it becomes
// a CONTAINS relationship from the Order to the Product, keyed by
// OrderItemID so re-runs merge the same edge.
type OrderItem struct {
	OrderItemID int64 `validate:"required,gt=0"`
	ProductID   *int64
	Quantity    *int64   `validate:"omitempty,gte=0"`
	UnitPrice   *float64 `validate:"omitempty,gte=0"`
}

// TotalPrice derives the total item price (quantity x unit price), treating
// absent operands as zero.
func (i *OrderItem) TotalPrice() float64 {
	var qty int64
	var unit float64
	if i.Quantity != nil {
		qty = *i.Quantity
	}
	if i.UnitPrice != nil {
		unit = *i.UnitPrice
	}
	return float64(qty) * unit
}

// Supplier is one product supplier. Primary key SupplierID.
type Supplier struct {
	SupplierID    int64 `validate:"required,gt=0"`
	SupplierName  *string
	ContactPerson *string
	Email         *string `validate:"omitempty,email"`
	PhoneNumber   *string
}

// Review is one customer product review. Primary key ReviewID.
type Review struct {
	ReviewID       int64 `validate:"required,gt=0"`
	CustomerID     *int64
	ProductID      *int64
	Rating         *int64 `validate:"omitempty,gte=1,lte=5"`
	ReviewText     *string
	ReviewDate     *time.Time
	SentimentScore *float64
	SentimentLabel *string
}

// FieldError describes one invalid field inside a rejected record.
type FieldError struct {
	Field      string `json:"field"`
	Value      any    `json:"value"`
	Constraint string `json:"constraint"`
}

// ValidationError rejects a record as a whole, carrying one entry per
// invalid field. The record is discarded, never partially loaded.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s=%v (%s)", f.Field, f.Value, f.Constraint))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, ", "))
}

// FieldNames returns the invalid field names, for log output.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return names
}

var validate = validator.New()

// validateRecord runs struct-tag validation and converts failures into a
// *ValidationError. Coercion has already happened by the time a record is
// constructed; validation never converts types.
func validateRecord(entity string, rec any) *ValidationError {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}

	verr := &ValidationError{Entity: entity}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			constraint := fe.Tag()
			if fe.Param() != "" {
				constraint = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
			}
			verr.Fields = append(verr.Fields, FieldError{
				Field:      fe.Field(),
				Value:      fe.Value(),
				Constraint: constraint,
			})
		}
		return verr
	}

	verr.Fields = append(verr.Fields, FieldError{Field: entity, Value: nil, Constraint: err.Error()})
	return verr
}

// Property map construction mirrors the original export shape: absent fields
// are omitted entirely, and the merge key is always present so node merges
// overwrite the full attribute set (last-write-wins).

func (p *Product) props() map[string]any {
	m := map[string]any{"productID": p.ProductID}
	putString(m, "productName", p.ProductName)
	putString(m, "description", p.Description)
	putString(m, "sku", p.SKU)
	putInt(m, "categoryID", p.CategoryID)
	putInt(m, "supplierID", p.SupplierID)
	putFloat(m, "price", p.Price)
	putInt(m, "stockQuantity", p.StockQuantity)
	putString(m, "imagePath", p.ImagePath)
	putTime(m, "dateAdded", p.DateAdded)
	return m
}

func (c *Category) props() map[string]any {
	m := map[string]any{"categoryID": c.CategoryID}
	putString(m, "categoryName", c.CategoryName)
	putString(m, "description", c.Description)
	return m
}

func (c *Customer) props() map[string]any {
	m := map[string]any{"customerID": c.CustomerID}
	putString(m, "firstName", c.FirstName)
	putString(m, "lastName", c.LastName)
	putString(m, "email", c.Email)
	putString(m, "phoneNumber", c.PhoneNumber)
	putString(m, "shippingAddress", c.ShippingAddress)
	putString(m, "billingAddress", c.BillingAddress)
	putTime(m, "registrationDate", c.RegistrationDate)
	putTime(m, "lastLoginDate", c.LastLoginDate)
	return m
}

func (o *Order) props() map[string]any {
	m := map[string]any{"orderID": o.OrderID}
	putInt(m, "customerID", o.CustomerID)
	putTime(m, "orderDate", o.OrderDate)
	putString(m, "orderStatus", o.OrderStatus)
	putFloat(m, "totalAmount", o.TotalAmount)
	putString(m, "shippingAddress", o.ShippingAddress)
	putString(m, "billingAddress", o.BillingAddress)
	return m
}

func (s *Supplier) props() map[string]any {
	m := map[string]any{"supplierID": s.SupplierID}
	putString(m, "supplierName", s.SupplierName)
	putString(m, "contactPerson", s.ContactPerson)
	putString(m, "email", s.Email)
	putString(m, "phoneNumber", s.PhoneNumber)
	return m
}

func (r *Review) props() map[string]any {
	m := map[string]any{"reviewID": r.ReviewID}
	putInt(m, "customerID", r.CustomerID)
	putInt(m, "productID", r.ProductID)
	putInt(m, "rating", r.Rating)
	putString(m, "reviewText", r.ReviewText)
	putTime(m, "reviewDate", r.ReviewDate)
	putFloat(m, "sentimentScore", r.SentimentScore)
	putString(m, "sentimentLabel", r.SentimentLabel)
	return m
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putInt(m map[string]any, key string, v *int64) {
	if v != nil {
		m[key] = *v
	}
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putTime(m map[string]any, key string, v *time.Time) {
	if v != nil {
		m[key] = *v
	}
}
