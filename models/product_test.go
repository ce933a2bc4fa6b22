package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }
func intp(i int) *int         { return &i }
func boolp(b bool) *bool      { return &b }

func TestProductPatchApplyPartial(t *testing.T) {
	p := Product{
		ProductID: "p1",
		Name:      "Sparkler Pack",
		Price:     100,
		MRP:       150,
		Stock:     5,
		IsOnSale:  false,
	}

	patch := ProductPatch{
		Price:    f64p(80),
		IsOnSale: boolp(true),
	}
	patch.Apply(&p)

	assert.Equal(t, 80.0, p.Price)
	assert.True(t, p.IsOnSale)
	// untouched fields keep their values
	assert.Equal(t, "Sparkler Pack", p.Name)
	assert.Equal(t, 150.0, p.MRP)
	assert.Equal(t, 5, p.Stock)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestProductPatchApplyZeroValues(t *testing.T) {
	p := Product{Name: "Rocket", Stock: 10, BurnTime: "30s"}

	// explicit zero is a real update, unlike an absent field
	patch := ProductPatch{Stock: intp(0), BurnTime: strp("")}
	patch.Apply(&p)

	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, "", p.BurnTime)
	assert.Equal(t, "Rocket", p.Name)
}

func TestFirstImage(t *testing.T) {
	withImages := Product{Images: []string{"/a.jpg", "/b.jpg"}}
	assert.Equal(t, "/a.jpg", withImages.FirstImage())

	empty := Product{}
	assert.Equal(t, "/placeholder.png", empty.FirstImage())
}
