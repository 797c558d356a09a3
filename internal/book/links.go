package book

import "strings"

const (
	DefaultAmazonBaseURL = "https://www.amazon.co.jp"
	DefaultHontoBaseURL  = "http://honto.jp"
)

// Links builds the retailer redirect URLs stored with every record.
type Links struct {
	AmazonBaseURL string
	HontoBaseURL  string
}

// DefaultLinks points at the production retailer hosts.
var DefaultLinks = Links{
	AmazonBaseURL: DefaultAmazonBaseURL,
	HontoBaseURL:  DefaultHontoBaseURL,
}

// AmazonURL returns the product page for an ISBN-10.
func (l Links) AmazonURL(isbn10 string) string {
	return strings.TrimSuffix(l.AmazonBaseURL, "/") + "/dp/" + isbn10
}

// HontoURL returns the honto redirect for an ISBN-13. honto keys books by the
// ISBN without its check digit.
func (l Links) HontoURL(isbn13 string) string {
	bookNo := isbn13
	if len(bookNo) > 0 {
		bookNo = bookNo[:len(bookNo)-1]
	}
	return strings.TrimSuffix(l.HontoBaseURL, "/") + "/redirect.html?bookno=" + bookNo
}
