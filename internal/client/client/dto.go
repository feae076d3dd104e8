package client

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/shopspring/decimal"
)

// Wire contract v1. Field names are the backend's, including its spelling.

// wireID accepts identifiers sent either as JSON strings or numbers.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}

type loginRequest struct {
	RegistrationOption int    `json:"registrationOption"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	RememberMe         bool   `json:"rememberMe"`
}

type loginResponse struct {
	TokenCode string `json:"tokenCode"`
	Name      string `json:"name"`
	ID        wireID `json:"id"`
}

type categoryDTO struct {
	ID   wireID `json:"id"`
	Name string `json:"name"`
}

type photoDTO struct {
	PhotoURL string `json:"photoURL"`
	IsMain   bool   `json:"isMain"`
}

type productDTO struct {
	ProductID            wireID          `json:"productId"`
	ProductName          string          `json:"productName"`
	ProductPrice         decimal.Decimal `json:"productPrice"`
	ProductSpecification string          `json:"productSpcefication"`
	ProductPhotosList    []photoDTO      `json:"productPhotosList"`
}

type cartLineDTO struct {
	ProductID wireID              `json:"productId"`
	Quantity  int                 `json:"quantity"`
	Products  productDTO          `json:"products"`
	LineTotal decimal.NullDecimal `json:"lineTotal"`
}

type manageCartRequest struct {
	ProductID     string   `json:"productId"`
	Quantity      int      `json:"quantity"`
	ExtrasListIDs []string `json:"extrasListIDs"`
}

type orderCalculationDTO struct {
	SubTotal         decimal.Decimal `json:"subTotal"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	TotalPaidBalance decimal.Decimal `json:"totalPaidBalance"`
	TotalDue         decimal.Decimal `json:"totalDue"`
	GrandTotal       decimal.Decimal `json:"grandTotal"`
}

type checkoutRequest struct {
	AddressID    string `json:"addressId"`
	OrderNotes   string `json:"orderNotes"`
	DiscountCode string `json:"discountCode,omitempty"`
}

type addressDTO struct {
	ID      wireID `json:"id"`
	Title   string `json:"title"`
	Details string `json:"details"`
}

func (d categoryDTO) model() models.Category {
	return models.Category{ID: string(d.ID), Name: strings.TrimSpace(d.Name)}
}

func (d productDTO) model() models.Product {
	p := models.Product{
		ID:            string(d.ProductID),
		Name:          d.ProductName,
		Price:         d.ProductPrice,
		Specification: d.ProductSpecification,
	}
	for _, ph := range d.ProductPhotosList {
		p.Photos = append(p.Photos, models.Photo{URL: ph.PhotoURL, IsMain: ph.IsMain})
	}
	return p
}

func (d cartLineDTO) model() models.CartLine {
	product := d.Products.model()
	if product.ID == "" {
		product.ID = string(d.ProductID)
	}
	return models.CartLine{
		ProductID: string(d.ProductID),
		Quantity:  d.Quantity,
		Product:   product,
		LineTotal: d.LineTotal,
	}
}

func (d orderCalculationDTO) model() models.OrderCalculation {
	return models.OrderCalculation{
		Subtotal:   d.SubTotal,
		Discount:   d.DiscountAmount,
		TotalPaid:  d.TotalPaidBalance,
		TotalDue:   d.TotalDue,
		GrandTotal: d.GrandTotal,
	}
}

func (d addressDTO) model() models.Address {
	return models.Address{ID: string(d.ID), Title: d.Title, Details: d.Details}
}

func mapSlice[D any, M any](in []D, f func(D) M) []M {
	out := make([]M, 0, len(in))
	for _, d := range in {
		out = append(out, f(d))
	}
	return out
}
