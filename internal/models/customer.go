package models

// Customer representa un contraparte (organización o persona)
type Customer struct {
	CustomerCode          string  `json:"customerCode" db:"customer_code"`
	CustomerName          string  `json:"customerName" db:"customer_name"`
	CustomerInn           *string `json:"customerInn,omitempty" db:"customer_inn"`
	CustomerKpp           *string `json:"customerKpp,omitempty" db:"customer_kpp"`
	CustomerLegalAddress  *string `json:"customerLegalAddress,omitempty" db:"customer_legal_address"`
	CustomerPostalAddress *string `json:"customerPostalAddress,omitempty" db:"customer_postal_address"`
	CustomerEmail         *string `json:"customerEmail,omitempty" db:"customer_email"`
	CustomerCodeMain      *string `json:"customerCodeMain,omitempty" db:"customer_code_main"`
	IsOrganization        bool    `json:"isOrganization" db:"is_organization"`
	IsPerson              bool    `json:"isPerson" db:"is_person"`
}

// CustomerRequest representa el request para crear/actualizar un cliente
type CustomerRequest struct {
	CustomerCode          string  `json:"customerCode"`
	CustomerName          string  `json:"customerName"`
	CustomerInn           *string `json:"customerInn,omitempty"`
	CustomerKpp           *string `json:"customerKpp,omitempty"`
	CustomerLegalAddress  *string `json:"customerLegalAddress,omitempty"`
	CustomerPostalAddress *string `json:"customerPostalAddress,omitempty"`
	CustomerEmail         *string `json:"customerEmail,omitempty"`
	CustomerCodeMain      *string `json:"customerCodeMain,omitempty"`
	IsOrganization        bool    `json:"isOrganization"`
	IsPerson              bool    `json:"isPerson"`
}

// CustomerFilter representa los filtros opcionales de búsqueda.
// Un campo vacío (o nil) no se aplica.
type CustomerFilter struct {
	Name           string
	Inn            string
	IsOrganization *bool
}

// ToCustomer construye la entidad con el código indicado.
// En una actualización el código viene de la ruta, no del body.
func (r *CustomerRequest) ToCustomer(code string) *Customer {
	return &Customer{
		CustomerCode:          code,
		CustomerName:          r.CustomerName,
		CustomerInn:           r.CustomerInn,
		CustomerKpp:           r.CustomerKpp,
		CustomerLegalAddress:  r.CustomerLegalAddress,
		CustomerPostalAddress: r.CustomerPostalAddress,
		CustomerEmail:         r.CustomerEmail,
		CustomerCodeMain:      r.CustomerCodeMain,
		IsOrganization:        r.IsOrganization,
		IsPerson:              r.IsPerson,
	}
}
