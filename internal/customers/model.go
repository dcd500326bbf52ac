package customers

import (
	"strings"
	"time"
)

// Customer is a billing party with separate shipping details.
type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"customer_name"`
	Email        string    `json:"customer_email"`
	Phone        string    `json:"customer_phone"`
	Address1     string    `json:"customer_address_1"`
	Address2     string    `json:"customer_address_2"`
	Town         string    `json:"customer_town"`
	County       string    `json:"customer_county"`
	Postcode     string    `json:"customer_postcode"`
	NameShip     string    `json:"customer_name_ship"`
	Address1Ship string    `json:"customer_address_1_ship"`
	Address2Ship string    `json:"customer_address_2_ship"`
	TownShip     string    `json:"customer_town_ship"`
	CountyShip   string    `json:"customer_county_ship"`
	PostcodeShip string    `json:"customer_postcode_ship"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ApplyShippingDefaults copies billing details into empty shipping fields.
func (c *Customer) ApplyShippingDefaults() {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&c.NameShip, c.Name)
	fill(&c.Address1Ship, c.Address1)
	fill(&c.Address2Ship, c.Address2)
	fill(&c.TownShip, c.Town)
	fill(&c.CountyShip, c.County)
	fill(&c.PostcodeShip, c.Postcode)
}

func (c *Customer) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
}
