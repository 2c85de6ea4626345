package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fields(details []ErrorDetail) []string {
	var out []string
	for _, d := range details {
		out = append(out, d.Field)
	}
	return out
}

func TestCustomerRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    CustomerRequest
		fields []string
	}{
		{
			name: "minimal valid",
			req:  CustomerRequest{CustomerCode: "C1", CustomerName: "Acme"},
		},
		{
			name: "full valid with 12 digit INN",
			req: CustomerRequest{
				CustomerCode:  "C1",
				CustomerName:  "Acme",
				CustomerInn:   strPtr("123456789012"),
				CustomerKpp:   strPtr("123456789"),
				CustomerEmail: strPtr("info@acme.example"),
			},
		},
		{
			name: "empty optional fields are accepted",
			req: CustomerRequest{
				CustomerCode:  "C1",
				CustomerName:  "Acme",
				CustomerInn:   strPtr(""),
				CustomerKpp:   strPtr(""),
				CustomerEmail: strPtr(""),
			},
		},
		{
			name:   "blank required fields",
			req:    CustomerRequest{CustomerCode: "  ", CustomerName: ""},
			fields: []string{"customerCode", "customerName"},
		},
		{
			name: "bad INN KPP and email",
			req: CustomerRequest{
				CustomerCode:  "C1",
				CustomerName:  "Acme",
				CustomerInn:   strPtr("12345678901"),
				CustomerKpp:   strPtr("12345678a"),
				CustomerEmail: strPtr("not-an-email"),
			},
			fields: []string{"customerInn", "customerKpp", "customerEmail"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fields, fields(tt.req.Validate()))
		})
	}
}

func TestLotRequest_Validate(t *testing.T) {
	valid := func() LotRequest {
		price := decimal.RequireFromString("100.50")
		return LotRequest{
			LotName:      "Widget",
			CustomerCode: "C1",
			Price:        &price,
			CurrencyCode: "USD",
			NdsRate:      "20%",
		}
	}

	req := valid()
	assert.Empty(t, req.Validate())

	zero := decimal.Zero
	req = valid()
	req.Price = &zero
	assert.Equal(t, []string{"price"}, fields(req.Validate()))

	negative := decimal.NewFromInt(-5)
	req = valid()
	req.Price = &negative
	assert.Equal(t, []string{"price"}, fields(req.Validate()))

	for _, raw := range []string{"0.001", "0.004", "100.555"} {
		price := decimal.RequireFromString(raw)
		req = valid()
		req.Price = &price
		details := req.Validate()
		assert.Equal(t, []string{"price"}, fields(details), raw)
		assert.Equal(t, "price must have at most 2 decimal places", details[0].Issue, raw)
	}

	trailingZeros := decimal.RequireFromString("100.500")
	req = valid()
	req.Price = &trailingZeros
	assert.Empty(t, req.Validate())

	req = LotRequest{}
	assert.Equal(t, []string{"lotName", "customerCode", "price", "currencyCode", "ndsRate"}, fields(req.Validate()))
}

func TestLotJSON(t *testing.T) {
	var req LotRequest
	body := `{"lotName":"Widget","customerCode":"C1","price":100.50,"currencyCode":"USD","ndsRate":"20%","dateDelivery":"2024-03-01T10:30:00"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.NotNil(t, req.Price)
	assert.True(t, req.Price.Equal(decimal.RequireFromString("100.5")))
	require.NotNil(t, req.DateDelivery)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), req.DateDelivery.Time)

	lot := req.ToLot(7)
	out, err := json.Marshal(lot)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"price":100.5`)
	assert.Contains(t, string(out), `"dateDelivery":"2024-03-01T10:30:00"`)
	assert.Contains(t, string(out), `"id":7`)
}

func TestParseLocalDateTime(t *testing.T) {
	for _, value := range []string{"2024-03-01T10:30:00Z", "2024-03-01T10:30:00", "2024-03-01T10:30", "2024-03-01"} {
		_, err := ParseLocalDateTime(value)
		assert.NoError(t, err, value)
	}

	_, err := ParseLocalDateTime("01.03.2024")
	assert.Error(t, err)
}
