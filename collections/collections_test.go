package collections

import (
	"testing"

	"sparkle/models"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "diwali-blockbusters", slugify("Diwali Blockbusters"))
	assert.Equal(t, "new-year-2027", slugify("  New Year 2027! "))
	assert.Equal(t, "kids-special", slugify("Kids' Special"))
	assert.True(t, slugRe.MatchString(slugify("Férié & Fun 100%")) || slugify("Férié & Fun 100%") == "")
}

func TestSlugPattern(t *testing.T) {
	assert.True(t, slugRe.MatchString("diwali-2026"))
	assert.False(t, slugRe.MatchString("Diwali"))
	assert.False(t, slugRe.MatchString("diwali--2026"))
	assert.False(t, slugRe.MatchString("-diwali"))
	assert.False(t, slugRe.MatchString(""))
}

func TestMergeProductsDedup(t *testing.T) {
	p := func(id string) models.Product { return models.Product{ProductID: id} }

	merged := mergeProducts(
		[]models.Product{p("a"), p("b")},
		[]models.Product{p("b"), p("c"), p("a"), p("d")},
	)

	ids := make([]string, len(merged))
	for i, m := range merged {
		ids[i] = m.ProductID
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestMergeProductsEmpty(t *testing.T) {
	assert.Empty(t, mergeProducts(nil, nil))
	merged := mergeProducts(nil, []models.Product{{ProductID: "x"}})
	assert.Len(t, merged, 1)
}
