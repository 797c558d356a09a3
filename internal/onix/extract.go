package onix

import (
	"strconv"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/errors"
	"github.com/lepinkainen/hondana/internal/isbn"
)

// Subject scheme identifiers used by Japanese ONIX feeds.
const (
	schemeKeyword = 20
	schemeCCode   = 78

	// Only the first few Subject entries are inspected.
	subjectScanWindow = 3
)

// Extractor flattens documents into records.
type Extractor struct {
	Defaults book.Defaults
	Links    book.Links
}

// NewExtractor uses the production defaults and retailer hosts.
func NewExtractor() Extractor {
	return Extractor{
		Defaults: book.DefaultValues,
		Links:    book.DefaultLinks,
	}
}

// Extract builds the record for isbn13 from doc. imageURL is stored as given;
// resolving it is the caller's job. A document without an "onix" member
// yields a MissingMetadataError.
func (e Extractor) Extract(doc *Document, isbn13, imageURL string) (book.Record, error) {
	product, ok := doc.Product()
	if !ok {
		return book.Record{}, errors.NewMissingMetadataError(isbn13)
	}

	isbn10, err := isbn.ConvertISBN13To10(isbn13)
	if err != nil {
		return book.Record{}, err
	}

	descriptive := product.Get("DescriptiveDetail")
	titleElement := descriptive.Get("TitleDetail").Get("TitleElement")
	publishing := product.Get("PublishingDetail")
	audience := descriptive.Get("Audience").At(0)

	rec := book.Record{
		ISBN:         isbn13,
		ISBN10:       isbn10,
		Title:        e.Defaults.Title,
		Subtitle:     titleElement.Get("Subtitle").Get("content").TextPtr(),
		Contributor:  descriptive.Get("Contributor").At(0).Get("PersonName").Get("content").TextPtr(),
		Content:      assembleContent(product.Get("CollateralDetail").Get("TextContent")),
		Imprint:      publishing.Get("Imprint").Get("ImprintName").TextPtr(),
		Publisher:    publishing.Get("Publisher").Get("PublisherName").TextPtr(),
		ImageURL:     imageURL,
		Price:        digitsInt(product.Get("ProductSupply").Get("SupplyDetail").Get("Price").At(0).Get("PriceAmount")),
		AudienceType: digitsIntOr(audience.Get("AudienceCodeType"), e.Defaults.AudienceType),
		AudienceCode: digitsIntOr(audience.Get("AudienceCodeValue"), e.Defaults.AudienceCode),
		CCode:        e.Defaults.CCode,
		AmazonURL:    e.Links.AmazonURL(isbn10),
		HontoURL:     e.Links.HontoURL(isbn13),
	}

	if title, ok := titleElement.Get("TitleText").Get("content").Text(); ok && !blank(title) {
		rec.Title = title
	}

	if raw, ok := publishing.Get("PublishingDate").At(0).Get("Date").Text(); ok {
		if published, ok := ParsePublishingDate(isbn.NormalizeDigits(raw)); ok {
			rec.PublishedDate = &published
		}
	}

	cCode, keyword := scanSubjects(descriptive.Get("Subject"))
	if cCode != nil && !blank(*cCode) {
		rec.CCode = *cCode
	}
	rec.SubjectText = keyword

	return rec, nil
}

// scanSubjects walks the first Subject entries from the highest index down.
// Every match overwrites the previous one, so the lowest matching index wins.
func scanSubjects(subjects Node) (cCode, keyword *string) {
	for i := min(subjectScanWindow-1, subjects.Len()-1); i >= 0; i-- {
		subject := subjects.At(i)
		if !subject.Exists() {
			continue
		}

		scheme, ok := subject.Get("SubjectSchemeIdentifier").Int()
		if !ok {
			continue
		}

		switch scheme {
		case schemeCCode:
			cCode = nil
			if code, ok := subject.Get("SubjectCode").Text(); ok {
				normalized := isbn.NormalizeDigits(code)
				cCode = &normalized
			}
		case schemeKeyword:
			keyword = subject.Get("SubjectHeadingText").TextPtr()
		}
	}
	return cCode, keyword
}

// digitsInt reads the digits of a scalar as an int; nil when there are none.
func digitsInt(n Node) *int {
	raw, ok := n.Text()
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(isbn.NormalizeDigits(raw))
	if err != nil {
		return nil
	}
	return &v
}

// digitsIntOr is digitsInt with a fallback for missing, blank and "0" values.
func digitsIntOr(n Node, fallback int) int {
	raw, ok := n.Text()
	if !ok || blank(isbn.NormalizeDigits(raw)) {
		return fallback
	}
	if v := digitsInt(n); v != nil {
		return *v
	}
	return fallback
}

// blank reports whether a defaulted field counts as unset. "0" is treated
// like the empty string.
func blank(s string) bool {
	return s == "" || s == "0"
}
