// Package models holds the server-side domain records persisted by the
// repositories.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Product is a catalog entry. DiscountPercent is nil when the product is
// not on sale.
type Product struct {
	ID              int64
	Name            string
	Price           float64
	Image           string
	Description     string
	Category        string
	DiscountPercent *int
	Colors          ProductColors
}

// ProductColor is one purchasable color variant with its gallery images.
type ProductColor struct {
	Name   string   `json:"name"`
	Hex    string   `json:"hex"`
	Images []string `json:"images"`
}

// ProductColors is stored as a JSON array.
type ProductColors []ProductColor

func (c ProductColors) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *ProductColors) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if b == nil {
		*c = ProductColors{}
		return nil
	}
	return json.Unmarshal(b, c)
}

// NullColor is a nullable JSON-encoded ProductColor column.
type NullColor struct {
	Color *ProductColor
}

func (n NullColor) Value() (driver.Value, error) {
	if n.Color == nil {
		return nil, nil
	}
	b, err := json.Marshal(n.Color)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (n *NullColor) Scan(src any) error {
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if b == nil {
		n.Color = nil
		return nil
	}
	var c ProductColor
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	n.Color = &c
	return nil
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, fmt.Errorf("unsupported json column type %T", src)
}
