package models

import "github.com/shopspring/decimal"

func init() {
	// Los clientes esperan el precio como número JSON, no como string
	decimal.MarshalJSONWithoutQuotes = true
}

// Lot representa un lote de compra asociado a un cliente
type Lot struct {
	ID            int64           `json:"id" db:"id"`
	LotName       string          `json:"lotName" db:"lot_name"`
	CustomerCode  string          `json:"customerCode" db:"customer_code"`
	Price         decimal.Decimal `json:"price" db:"price"`
	CurrencyCode  string          `json:"currencyCode" db:"currency_code"`
	NdsRate       string          `json:"ndsRate" db:"nds_rate"`
	PlaceDelivery *string         `json:"placeDelivery,omitempty" db:"place_delivery"`
	DateDelivery  *LocalDateTime  `json:"dateDelivery,omitempty" db:"date_delivery"`
}

// LotRequest representa el request para crear/actualizar un lote
type LotRequest struct {
	LotName       string           `json:"lotName"`
	CustomerCode  string           `json:"customerCode"`
	Price         *decimal.Decimal `json:"price"`
	CurrencyCode  string           `json:"currencyCode"`
	NdsRate       string           `json:"ndsRate"`
	PlaceDelivery *string          `json:"placeDelivery,omitempty"`
	DateDelivery  *LocalDateTime   `json:"dateDelivery,omitempty"`
}

// LotFilter representa los filtros opcionales de búsqueda de lotes
type LotFilter struct {
	LotName      string
	CustomerCode string
	CurrencyCode string
}

// ToLot construye la entidad. Debe llamarse después de Validate.
func (r *LotRequest) ToLot(id int64) *Lot {
	lot := &Lot{
		ID:            id,
		LotName:       r.LotName,
		CustomerCode:  r.CustomerCode,
		CurrencyCode:  r.CurrencyCode,
		NdsRate:       r.NdsRate,
		PlaceDelivery: r.PlaceDelivery,
		DateDelivery:  r.DateDelivery,
	}
	if r.Price != nil {
		lot.Price = *r.Price
	}
	return lot
}
