package models

import "github.com/shopspring/decimal"

type Category struct {
	ID   string
	Name string
}

type Photo struct {
	URL    string
	IsMain bool
}

// Product is a read-only catalog item as served for one category.
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	Specification string
	Photos        []Photo
}

// MainPhoto returns the photo flagged as main, falling back to the first one.
func (p Product) MainPhoto() (Photo, bool) {
	for _, ph := range p.Photos {
		if ph.IsMain {
			return ph, true
		}
	}
	if len(p.Photos) > 0 {
		return p.Photos[0], true
	}
	return Photo{}, false
}
