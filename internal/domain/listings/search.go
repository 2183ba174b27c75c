package listings

import "strings"

type SortOrder string

const (
	SortByPriceAsc  SortOrder = "price_asc"
	SortByPriceDesc SortOrder = "price_desc"
	SortByRating    SortOrder = "rating"
)

const defaultSearchLimit = 20

// SearchParams filter the public catalog. Zero values mean "no filter".
type SearchParams struct {
	City          string
	Country       string
	Kind          Kind
	PropertyTypes []string
	MinGuests     int
	PriceMinCents int64
	PriceMaxCents int64
	OnlyActive    bool
	Sort          SortOrder
	Limit         int
	Offset        int
}

// Normalized applies defaults and trims filter inputs.
func (p SearchParams) Normalized() SearchParams {
	out := p
	out.City = strings.TrimSpace(p.City)
	out.Country = strings.TrimSpace(p.Country)
	types := make([]string, 0, len(p.PropertyTypes))
	for _, t := range p.PropertyTypes {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			types = append(types, t)
		}
	}
	out.PropertyTypes = types
	if out.Limit <= 0 || out.Limit > 100 {
		out.Limit = defaultSearchLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	if out.Sort == "" {
		out.Sort = SortByPriceAsc
	}
	return out
}

type SearchResult struct {
	Items []*Listing
	Total int
}
