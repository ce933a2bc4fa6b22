package models

import "time"

// Content is an editable marketing section keyed by a stable ContentID the
// frontend references directly.
type Content struct {
	ContentID     string          `json:"contentId" bson:"contentid"`
	Title         string          `json:"title" bson:"title"`
	Content       string          `json:"content" bson:"content"`
	Type          string          `json:"type" bson:"type"` // text, image, video, testimonials, features, steps
	Metadata      ContentMetadata `json:"metadata" bson:"metadata"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt" bson:"lastupdatedat"`
}

type ContentMetadata struct {
	ImageURL     string        `json:"imageUrl,omitempty" bson:"imageurl,omitempty"`
	VideoURL     string        `json:"videoUrl,omitempty" bson:"videourl,omitempty"`
	AltText      string        `json:"altText,omitempty" bson:"alttext,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty" bson:"testimonials,omitempty"`
	Features     []IconBlock   `json:"features,omitempty" bson:"features,omitempty"`
	Steps        []IconBlock   `json:"steps,omitempty" bson:"steps,omitempty"`
}

type Testimonial struct {
	Name     string `json:"name" bson:"name"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
	Rating   int    `json:"rating" bson:"rating"`
	Comment  string `json:"comment" bson:"comment"`
	Image    string `json:"image,omitempty" bson:"image,omitempty"`
}

// IconBlock is a titled, icon-tagged blurb used for both feature and
// how-it-works sections.
type IconBlock struct {
	Icon        string `json:"icon" bson:"icon"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

// ProductPack is a curated bundle embedded in a festival collection.
type ProductPack struct {
	PackID      string           `json:"packId" bson:"packid"`
	Name        string           `json:"name" bson:"name"`
	Description string           `json:"description" bson:"description"`
	Price       float64          `json:"price" bson:"price"`
	MRP         float64          `json:"mrp" bson:"mrp"`
	Image       string           `json:"image,omitempty" bson:"image,omitempty"`
	Products    []OrderItemInput `json:"products" bson:"products"`
	IsActive    bool             `json:"isActive" bson:"isactive"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdat"`
}

// FestivalCollection is a themed storefront grouping of products, matched
// by explicit assignment and optionally by tag.
type FestivalCollection struct {
	CollectionID         string        `json:"collectionId" bson:"collectionid"`
	Title                string        `json:"title" bson:"title"`
	Description          string        `json:"description" bson:"description"`
	Slug                 string        `json:"slug" bson:"slug"`
	Color                string        `json:"color" bson:"color"`
	Image                string        `json:"image,omitempty" bson:"image,omitempty"`
	IsActive             bool          `json:"isActive" bson:"isactive"`
	SortOrder            int           `json:"sortOrder" bson:"sortorder"`
	Tags                 []string      `json:"tags,omitempty" bson:"tags,omitempty"`
	SEOTitle             string        `json:"seoTitle,omitempty" bson:"seotitle,omitempty"`
	SEODescription       string        `json:"seoDescription,omitempty" bson:"seodescription,omitempty"`
	AssignedProducts     []string      `json:"assignedProducts" bson:"assignedproducts"`
	CustomPacks          []ProductPack `json:"customPacks,omitempty" bson:"custompacks,omitempty"`
	ShowAllTaggedProduct bool          `json:"showAllTaggedProducts" bson:"showalltaggedproducts"`
	CreatedAt            time.Time     `json:"createdAt" bson:"createdat"`
	UpdatedAt            time.Time     `json:"updatedAt" bson:"updatedat"`
}
