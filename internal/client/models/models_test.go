package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	d := 20
	assert.InDelta(t, 80.0, Product{Price: 100, DiscountPercent: &d}.FinalPrice(), 1e-9)
	assert.InDelta(t, 100.0, Product{Price: 100}.FinalPrice(), 1e-9)
}
