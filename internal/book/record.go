// Package book holds the flat book record produced by the import pipeline
// together with the defaults and link templates used to fill it.
package book

import "time"

// Record is one stored book. Pointer fields distinguish "not present in the
// source document" from an empty value.
type Record struct {
	// ISBN is the 13-digit natural key.
	ISBN string `json:"isbn"`

	// ISBN10 is derived from ISBN and may end in 'X'.
	ISBN10 string `json:"isbn_10"`

	Title       string  `json:"title"`
	Subtitle    *string `json:"subtitle,omitempty"`
	Contributor *string `json:"contributor,omitempty"`

	// Content is the assembled description; only <br> markup survives.
	Content string `json:"content"`

	Imprint   *string `json:"imprint,omitempty"`
	Publisher *string `json:"publisher,omitempty"`

	// ImageURL is either the thumbnail URL or Defaults.NoImage.
	ImageURL string `json:"image_url"`

	Price         *int       `json:"price,omitempty"`
	PublishedDate *time.Time `json:"published_date,omitempty"`

	AudienceType int     `json:"audience_type"`
	AudienceCode int     `json:"audience_code"`
	CCode        string  `json:"c_code"`
	SubjectText  *string `json:"subject_text,omitempty"`

	AmazonURL string `json:"amazon_url"`
	HontoURL  string `json:"honto_url"`

	// Set by the store on insert.
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
