package models

import "time"

// Product is a catalog item. Stock is mutated by admin edits and by order
// placement; orders snapshot the fields they need instead of referencing a
// live product.
type Product struct {
	ProductID        string            `json:"productId" bson:"productid"`
	CategoryID       string            `json:"categoryId" bson:"categoryid"`
	Name             string            `json:"name" bson:"name"`
	Images           []string          `json:"images" bson:"images"`
	Description      string            `json:"description" bson:"description"`
	ShortDescription string            `json:"shortDescription" bson:"shortdescription"`
	MRP              float64           `json:"mrp" bson:"mrp"`
	Price            float64           `json:"price" bson:"price"`
	Rating           float64           `json:"rating" bson:"rating"`
	ReviewCount      int               `json:"reviewCount" bson:"reviewcount"`
	SoundLevel       string            `json:"soundLevel" bson:"soundlevel"`
	BurnTime         string            `json:"burnTime,omitempty" bson:"burntime,omitempty"`
	Stock            int               `json:"stock" bson:"stock"`
	Features         []string          `json:"features,omitempty" bson:"features,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Tags             []string          `json:"tags,omitempty" bson:"tags,omitempty"`
	IsNewArrival     bool              `json:"isNewArrival" bson:"isnewarrival"`
	IsBestSeller     bool              `json:"isBestSeller" bson:"isbestseller"`
	IsOnSale         bool              `json:"isOnSale" bson:"isonsale"`
	CreatedAt        time.Time         `json:"createdAt" bson:"createdat"`
	UpdatedAt        time.Time         `json:"updatedAt" bson:"updatedat"`
}

// FirstImage returns the image used for order snapshots.
func (p *Product) FirstImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return "/placeholder.png"
}

// ProductPatch is a partial update for a product. Nil means "no change";
// every updatable field goes through Apply so optional-field patching lives
// in one place.
type ProductPatch struct {
	CategoryID       *string            `json:"categoryId,omitempty"`
	Name             *string            `json:"name,omitempty"`
	Images           *[]string          `json:"images,omitempty"`
	Description      *string            `json:"description,omitempty"`
	ShortDescription *string            `json:"shortDescription,omitempty"`
	MRP              *float64           `json:"mrp,omitempty"`
	Price            *float64           `json:"price,omitempty"`
	SoundLevel       *string            `json:"soundLevel,omitempty"`
	BurnTime         *string            `json:"burnTime,omitempty"`
	Stock            *int               `json:"stock,omitempty"`
	Features         *[]string          `json:"features,omitempty"`
	Specifications   *map[string]string `json:"specifications,omitempty"`
	Tags             *[]string          `json:"tags,omitempty"`
	IsNewArrival     *bool              `json:"isNewArrival,omitempty"`
	IsBestSeller     *bool              `json:"isBestSeller,omitempty"`
	IsOnSale         *bool              `json:"isOnSale,omitempty"`
}

// Apply merges the patch into p and bumps UpdatedAt.
func (patch *ProductPatch) Apply(p *Product) {
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ShortDescription != nil {
		p.ShortDescription = *patch.ShortDescription
	}
	if patch.MRP != nil {
		p.MRP = *patch.MRP
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.SoundLevel != nil {
		p.SoundLevel = *patch.SoundLevel
	}
	if patch.BurnTime != nil {
		p.BurnTime = *patch.BurnTime
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Features != nil {
		p.Features = *patch.Features
	}
	if patch.Specifications != nil {
		p.Specifications = *patch.Specifications
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.IsNewArrival != nil {
		p.IsNewArrival = *patch.IsNewArrival
	}
	if patch.IsBestSeller != nil {
		p.IsBestSeller = *patch.IsBestSeller
	}
	if patch.IsOnSale != nil {
		p.IsOnSale = *patch.IsOnSale
	}
	p.UpdatedAt = time.Now()
}

// Category groups products. Name is unique; deletion is blocked while
// products still reference the category.
type Category struct {
	CategoryID  string    `json:"categoryId" bson:"categoryid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	HeroImage   string    `json:"heroImage,omitempty" bson:"heroimage,omitempty"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdat"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedat"`
}
