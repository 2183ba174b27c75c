package dto

import (
	domainlistings "staybook/internal/domain/listings"
)

// CatalogCard is one search-result entry: listing summary plus its resolved
// display price.
type CatalogCard struct {
	ID           string       `json:"id"`
	Kind         string       `json:"kind"`
	Title        string       `json:"title"`
	PropertyType string       `json:"property_type"`
	City         string       `json:"city"`
	Country      string       `json:"country"`
	Rating       float64      `json:"rating"`
	ThumbnailURL string       `json:"thumbnail_url,omitempty"`
	Price        DisplayPrice `json:"price"`
}

type CatalogPage struct {
	Items []CatalogCard `json:"items"`
	Total int           `json:"total"`
}

func MapCatalogCard(l *domainlistings.Listing, price DisplayPrice) CatalogCard {
	return CatalogCard{
		ID:           string(l.ID),
		Kind:         string(l.Kind),
		Title:        l.Title,
		PropertyType: l.PropertyType,
		City:         l.Address.City,
		Country:      l.Address.Country,
		Rating:       l.Rating,
		ThumbnailURL: l.ThumbnailURL,
		Price:        price,
	}
}
