package content

import (
	"time"

	"sparkle/models"
)

// defaultContent is the storefront copy seeded on first read so a fresh
// deployment renders a complete homepage before anyone touches the CMS.
func defaultContent() []models.Content {
	now := time.Now()
	return []models.Content{
		{
			ContentID:     "hero-banner",
			Title:         "Light Up Your Celebrations",
			Content:       "Premium fireworks delivered from Sivakasi to your doorstep.",
			Type:          "image",
			Metadata:      models.ContentMetadata{ImageURL: "/images/hero-diwali.jpg", AltText: "Night sky full of fireworks"},
			LastUpdatedAt: now,
		},
		{
			ContentID:     "about-us",
			Title:         "Three Generations of Craft",
			Content:       "Our family has been making fireworks since 1962. Every item is safety tested and sourced directly from licensed manufacturers.",
			Type:          "text",
			LastUpdatedAt: now,
		},
		{
			ContentID: "why-choose-us",
			Title:     "Why Choose Us",
			Type:      "features",
			Metadata: models.ContentMetadata{
				Features: []models.IconBlock{
					{Icon: "shield", Title: "Safety First", Description: "Every product is tested and certified before it reaches you."},
					{Icon: "truck", Title: "Fast Delivery", Description: "Dispatched within 24 hours across the country."},
					{Icon: "tag", Title: "Factory Prices", Description: "No middlemen. You pay what the factory charges plus shipping."},
				},
			},
			LastUpdatedAt: now,
		},
		{
			ContentID: "how-it-works",
			Title:     "How It Works",
			Type:      "steps",
			Metadata: models.ContentMetadata{
				Steps: []models.IconBlock{
					{Icon: "cart", Title: "Pick Your Items", Description: "Browse by category or grab a festival pack."},
					{Icon: "card", Title: "Pay Securely", Description: "UPI, cards, or cash on delivery."},
					{Icon: "sparkles", Title: "Celebrate", Description: "Your order arrives packed and ready to light."},
				},
			},
			LastUpdatedAt: now,
		},
		{
			ContentID: "testimonials",
			Title:     "What Customers Say",
			Type:      "testimonials",
			Metadata: models.ContentMetadata{
				Testimonials: []models.Testimonial{
					{Name: "Ravi Kumar", Location: "Chennai", Rating: 5, Comment: "Ordered for Diwali, arrived two days early. Everything worked."},
					{Name: "Meena Iyer", Location: "Coimbatore", Rating: 5, Comment: "The gift box was beautifully packed. Kids loved the sparklers."},
					{Name: "Arjun S", Location: "Bengaluru", Rating: 4, Comment: "Good prices. The rocket combo was the highlight of our party."},
				},
			},
			LastUpdatedAt: now,
		},
		{
			ContentID:     "safety-notice",
			Title:         "Safety Notice",
			Content:       "Fireworks are for outdoor use by adults. Keep water nearby, light one item at a time, and never relight a dud.",
			Type:          "text",
			LastUpdatedAt: now,
		},
	}
}
