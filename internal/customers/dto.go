package customers

// CreateCustomerRequest is the payload for POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"customer_name" validate:"required,max=100"`
	Email        string `json:"customer_email" validate:"omitempty,email"`
	Phone        string `json:"customer_phone" validate:"max=40"`
	Address1     string `json:"customer_address_1"`
	Address2     string `json:"customer_address_2"`
	Town         string `json:"customer_town"`
	County       string `json:"customer_county"`
	Postcode     string `json:"customer_postcode" validate:"max=20"`
	NameShip     string `json:"customer_name_ship" validate:"max=100"`
	Address1Ship string `json:"customer_address_1_ship"`
	Address2Ship string `json:"customer_address_2_ship"`
	TownShip     string `json:"customer_town_ship"`
	CountyShip   string `json:"customer_county_ship"`
	PostcodeShip string `json:"customer_postcode_ship" validate:"max=20"`
}

// UpdateCustomerRequest carries a partial update. Nil or empty fields are left untouched.
type UpdateCustomerRequest struct {
	Name         *string `json:"customer_name" validate:"omitempty,max=100"`
	Email        *string `json:"customer_email" validate:"omitempty,email"`
	Phone        *string `json:"customer_phone" validate:"omitempty,max=40"`
	Address1     *string `json:"customer_address_1"`
	Address2     *string `json:"customer_address_2"`
	Town         *string `json:"customer_town"`
	County       *string `json:"customer_county"`
	Postcode     *string `json:"customer_postcode" validate:"omitempty,max=20"`
	NameShip     *string `json:"customer_name_ship" validate:"omitempty,max=100"`
	Address1Ship *string `json:"customer_address_1_ship"`
	Address2Ship *string `json:"customer_address_2_ship"`
	TownShip     *string `json:"customer_town_ship"`
	CountyShip   *string `json:"customer_county_ship"`
	PostcodeShip *string `json:"customer_postcode_ship" validate:"omitempty,max=20"`
}

// ListCustomersRequest filters customer listings.
type ListCustomersRequest struct {
	Search string
	Limit  int
	Offset int
}

func (req CreateCustomerRequest) toCustomer() Customer {
	return Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address1:     req.Address1,
		Address2:     req.Address2,
		Town:         req.Town,
		County:       req.County,
		Postcode:     req.Postcode,
		NameShip:     req.NameShip,
		Address1Ship: req.Address1Ship,
		Address2Ship: req.Address2Ship,
		TownShip:     req.TownShip,
		CountyShip:   req.CountyShip,
		PostcodeShip: req.PostcodeShip,
	}
}

func (req UpdateCustomerRequest) apply(c *Customer) {
	set := func(dst *string, src *string) {
		if src != nil && *src != "" {
			*dst = *src
		}
	}
	set(&c.Name, req.Name)
	set(&c.Email, req.Email)
	set(&c.Phone, req.Phone)
	set(&c.Address1, req.Address1)
	set(&c.Address2, req.Address2)
	set(&c.Town, req.Town)
	set(&c.County, req.County)
	set(&c.Postcode, req.Postcode)
	set(&c.NameShip, req.NameShip)
	set(&c.Address1Ship, req.Address1Ship)
	set(&c.Address2Ship, req.Address2Ship)
	set(&c.TownShip, req.TownShip)
	set(&c.CountyShip, req.CountyShip)
	set(&c.PostcodeShip, req.PostcodeShip)
}
