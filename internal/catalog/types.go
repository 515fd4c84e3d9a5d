package catalog

import "strings"

// Product is a single catalog entry. IDs are opaque strings on the wire;
// the repository maps them onto the serial primary key.
type Product struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Images        []string `json:"images"`
	Created       string   `json:"created"` // YYYY-MM-DD
	Description   string   `json:"description"`
	Specification string   `json:"specification"`
	Features      string   `json:"features"`
}

// CoverImage returns the first image, which list and detail views use
// as the cover. Empty string when the product has no images.
func (p *Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// FeatureList splits the features text into one entry per non-empty line.
func (p *Product) FeatureList() []string {
	var features []string
	for _, line := range strings.Split(p.Features, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			features = append(features, line)
		}
	}
	return features
}
