package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(v int64) *int64 { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestValidateRecordProduct(t *testing.T) {
	p := &Product{ProductID: 1, Price: floatPtr(9.99)}
	assert.Nil(t, validateRecord(EntityProduct, p))

	p = &Product{ProductID: 0}
	verr := validateRecord(EntityProduct, p)
	require.NotNil(t, verr)
	assert.Equal(t, EntityProduct, verr.Entity)
	assert.Contains(t, verr.FieldNames(), "ProductID")

	p = &Product{ProductID: 1, Price: floatPtr(-5)}
	verr = validateRecord(EntityProduct, p)
	require.NotNil(t, verr)
	assert.Contains(t, verr.FieldNames(), "Price")
}

func TestValidateRecordOptionalAbsent(t *testing.T) {
	// Absent optional fields pass every omitempty constraint.
	assert.Nil(t, validateRecord(EntityCustomer, &Customer{CustomerID: 5}))
	assert.Nil(t, validateRecord(EntityReview, &Review{ReviewID: 5}))
}

func TestValidateRecordCustomerEmail(t *testing.T) {
	c := &Customer{CustomerID: 1, Email: strPtr("not-an-email")}
	verr := validateRecord(EntityCustomer, c)
	require.NotNil(t, verr)
	assert.Contains(t, verr.FieldNames(), "Email")

	c.Email = strPtr("user@example.com")
	assert.Nil(t, validateRecord(EntityCustomer, c))
}

func TestValidateRecordReviewRating(t *testing.T) {
	r := &Review{ReviewID: 1, Rating: intPtr(6)}
	verr := validateRecord(EntityReview, r)
	require.NotNil(t, verr)
	assert.Contains(t, verr.FieldNames(), "Rating")

	r.Rating = intPtr(0)
	require.NotNil(t, validateRecord(EntityReview, r))

	r.Rating = intPtr(5)
	assert.Nil(t, validateRecord(EntityReview, r))
}

func TestValidationErrorMessage(t *testing.T) {
	verr := validateRecord(EntityOrder, &Order{OrderID: 0, TotalAmount: floatPtr(-1)})
	require.NotNil(t, verr)
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "orders validation failed")
	assert.Contains(t, verr.Error(), "OrderID")
}

func TestOrderItemTotalPrice(t *testing.T) {
	item := &OrderItem{OrderItemID: 1, Quantity: intPtr(4), UnitPrice: floatPtr(12.5)}
	assert.Equal(t, 50.0, item.TotalPrice())

	item = &OrderItem{OrderItemID: 1}
	assert.Equal(t, 0.0, item.TotalPrice())

	item = &OrderItem{OrderItemID: 1, Quantity: intPtr(3)}
	assert.Equal(t, 0.0, item.TotalPrice())
}

func TestProductPropsOmitsAbsentFields(t *testing.T) {
	added := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	p := &Product{
		ProductID:   10,
		ProductName: strPtr("Widget"),
		Price:       floatPtr(3.5),
		DateAdded:   timePtr(added),
	}

	props := p.props()
	assert.Equal(t, int64(10), props["productID"])
	assert.Equal(t, "Widget", props["productName"])
	assert.Equal(t, 3.5, props["price"])
	assert.Equal(t, added, props["dateAdded"])

	_, ok := props["description"]
	assert.False(t, ok)
	_, ok = props["stockQuantity"]
	assert.False(t, ok)
}

func TestOrderPropsKeyAlwaysPresent(t *testing.T) {
	props := (&Order{OrderID: 77}).props()
	assert.Equal(t, int64(77), props["orderID"])
	assert.Len(t, props, 1)
}
