package onix

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/hondana/internal/book"
	"github.com/lepinkainen/hondana/internal/errors"
)

const testISBN = "9784798142470"

func loadDocument(t *testing.T, name string) *Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	doc, err := ParseDocument(data)
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func mustDocument(t *testing.T, raw string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestExtractFullDocument(t *testing.T) {
	doc := loadDocument(t, "openbd_full.json")
	imageURL := "https://ndlsearch.ndl.go.jp/thumbnail/9784798142470.jpg"

	rec, err := NewExtractor().Extract(doc, testISBN, imageURL)
	require.NoError(t, err)

	assert.Equal(t, testISBN, rec.ISBN)
	assert.Equal(t, "4798142476", rec.ISBN10)
	assert.Equal(t, "はじめてのGo", rec.Title)
	require.NotNil(t, rec.Subtitle)
	assert.Equal(t, "並行処理入門", *rec.Subtitle)
	require.NotNil(t, rec.Contributor)
	assert.Equal(t, "山田 太郎", *rec.Contributor)
	assert.Equal(t, "目次<br>詳しい紹介<br>短い紹介<br>", rec.Content)
	require.NotNil(t, rec.Imprint)
	assert.Equal(t, "翔泳社", *rec.Imprint)
	require.NotNil(t, rec.Publisher)
	assert.Equal(t, "翔泳社", *rec.Publisher)
	assert.Equal(t, imageURL, rec.ImageURL)
	require.NotNil(t, rec.Price)
	assert.Equal(t, 3200, *rec.Price)
	require.NotNil(t, rec.PublishedDate)
	assert.True(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC).Equal(*rec.PublishedDate))
	assert.Equal(t, 22, rec.AudienceType)
	assert.Equal(t, 1, rec.AudienceCode)
	assert.Equal(t, "3055", rec.CCode)
	require.NotNil(t, rec.SubjectText)
	assert.Equal(t, "Go;プログラミング", *rec.SubjectText)
	assert.Equal(t, "https://www.amazon.co.jp/dp/4798142476", rec.AmazonURL)
	assert.Equal(t, "http://honto.jp/redirect.html?bookno=978479814247", rec.HontoURL)
	assert.True(t, rec.CreatedAt.IsZero())
}

func TestExtractMinimalDocumentUsesDefaults(t *testing.T) {
	doc := loadDocument(t, "openbd_minimal.json")

	rec, err := NewExtractor().Extract(doc, testISBN, book.DefaultValues.NoImage)
	require.NoError(t, err)

	assert.Equal(t, "名無しの本", rec.Title)
	assert.Nil(t, rec.Subtitle)
	assert.Nil(t, rec.Contributor)
	assert.Equal(t, "", rec.Content)
	assert.Nil(t, rec.Imprint)
	assert.Nil(t, rec.Publisher)
	assert.Nil(t, rec.Price)
	assert.Nil(t, rec.PublishedDate)
	assert.Equal(t, 99, rec.AudienceType)
	assert.Equal(t, 99, rec.AudienceCode)
	assert.Equal(t, "9999", rec.CCode)
	assert.Nil(t, rec.SubjectText)
	assert.Equal(t, "no_image.png", rec.ImageURL)
}

func TestExtractEmptyTitleFallsBack(t *testing.T) {
	doc := mustDocument(t, `{"onix": {"DescriptiveDetail": {"TitleDetail": {"TitleElement": {"TitleText": {"content": ""}}}}}}`)

	rec, err := NewExtractor().Extract(doc, testISBN, "x")
	require.NoError(t, err)
	assert.Equal(t, "名無しの本", rec.Title)
}

func TestExtractZeroValuesFallBack(t *testing.T) {
	doc := mustDocument(t, `{"onix": {"DescriptiveDetail": {
		"TitleDetail": {"TitleElement": {"TitleText": {"content": "0"}}},
		"Audience": [{"AudienceCodeType": "0", "AudienceCodeValue": 0}],
		"Subject": [{"SubjectSchemeIdentifier": "78", "SubjectCode": "０"}]
	}, "ProductSupply": {"SupplyDetail": {"Price": [{"PriceAmount": "0"}]}}}}`)

	rec, err := NewExtractor().Extract(doc, testISBN, "x")
	require.NoError(t, err)
	assert.Equal(t, "名無しの本", rec.Title)
	assert.Equal(t, 99, rec.AudienceType)
	assert.Equal(t, 99, rec.AudienceCode)
	assert.Equal(t, "9999", rec.CCode)
	require.NotNil(t, rec.Price)
	assert.Equal(t, 0, *rec.Price)
}

func TestExtractMissingProduct(t *testing.T) {
	doc := mustDocument(t, `{"summary": {"isbn": "9784798142470"}}`)

	_, err := NewExtractor().Extract(doc, testISBN, "x")
	require.Error(t, err)
	assert.True(t, errors.IsMissingMetadataError(err))

	_, err = NewExtractor().Extract(nil, testISBN, "x")
	require.Error(t, err)
	assert.True(t, errors.IsMissingMetadataError(err))
}

func TestExtractInvalidISBN(t *testing.T) {
	doc := loadDocument(t, "openbd_minimal.json")

	_, err := NewExtractor().Extract(doc, "12345", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, book.ErrInvalidISBN)
}

func TestExtractUnparsableScalars(t *testing.T) {
	doc := mustDocument(t, `{"onix": {
		"DescriptiveDetail": {"Audience": [{"AudienceCodeType": "", "AudienceCodeValue": "なし"}]},
		"PublishingDetail": {"PublishingDate": [{"Date": "2023"}]},
		"ProductSupply": {"SupplyDetail": {"Price": [{"PriceAmount": "未定"}]}}
	}}`)

	rec, err := NewExtractor().Extract(doc, testISBN, "x")
	require.NoError(t, err)
	assert.Nil(t, rec.Price)
	assert.Nil(t, rec.PublishedDate)
	assert.Equal(t, 99, rec.AudienceType)
	assert.Equal(t, 99, rec.AudienceCode)
}

func TestExtractFullWidthDate(t *testing.T) {
	doc := mustDocument(t, `{"onix": {"PublishingDetail": {"PublishingDate": [{"Date": "２０２３０６"}]}}}`)

	rec, err := NewExtractor().Extract(doc, testISBN, "x")
	require.NoError(t, err)
	require.NotNil(t, rec.PublishedDate)
	assert.True(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC).Equal(*rec.PublishedDate))
}

func TestExtractCustomLinks(t *testing.T) {
	e := NewExtractor()
	e.Links = book.Links{AmazonBaseURL: "http://amazon.test/", HontoBaseURL: "http://honto.test"}

	rec, err := e.Extract(loadDocument(t, "openbd_minimal.json"), testISBN, "x")
	require.NoError(t, err)
	assert.Equal(t, "http://amazon.test/dp/4798142476", rec.AmazonURL)
	assert.Equal(t, "http://honto.test/redirect.html?bookno=978479814247", rec.HontoURL)
}

func TestScanSubjects(t *testing.T) {
	tests := []struct {
		name        string
		json        string
		wantCCode   *string
		wantKeyword *string
	}{
		{
			name:      "lowest index wins",
			json:      `[{"SubjectSchemeIdentifier": "78", "SubjectCode": "1111"}, {"SubjectSchemeIdentifier": "20", "SubjectHeadingText": "a"}, {"SubjectSchemeIdentifier": "78", "SubjectCode": "2222"}]`,
			wantCCode: ptr("1111"), wantKeyword: ptr("a"),
		},
		{
			name:      "numeric scheme identifier",
			json:      `[{"SubjectSchemeIdentifier": 78, "SubjectCode": "０１２３"}]`,
			wantCCode: ptr("0123"),
		},
		{
			name: "entries past the window are ignored",
			json: `[{"SubjectSchemeIdentifier": "10"}, {"SubjectSchemeIdentifier": "10"}, {"SubjectSchemeIdentifier": "10"}, {"SubjectSchemeIdentifier": "78", "SubjectCode": "1111"}]`,
		},
		{
			name:      "match without code clears an earlier one",
			json:      `[{"SubjectSchemeIdentifier": "78"}, {"SubjectSchemeIdentifier": "78", "SubjectCode": "2222"}]`,
			wantCCode: nil,
		},
		{
			name: "not a list",
			json: `{"SubjectSchemeIdentifier": "78", "SubjectCode": "1111"}`,
		},
		{
			name:        "gaps and unreadable schemes",
			json:        `[null, {"SubjectSchemeIdentifier": "x"}, {"SubjectSchemeIdentifier": "20", "SubjectHeadingText": "kw"}]`,
			wantKeyword: ptr("kw"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseNode([]byte(tt.json))
			require.NoError(t, err)

			cCode, keyword := scanSubjects(n)
			assert.Equal(t, tt.wantCCode, cCode)
			assert.Equal(t, tt.wantKeyword, keyword)
		})
	}
}

func TestExtractClearedCCodeFallsBackToDefault(t *testing.T) {
	doc := mustDocument(t, `{"onix": {"DescriptiveDetail": {"Subject": [{"SubjectSchemeIdentifier": "78"}, {"SubjectSchemeIdentifier": "78", "SubjectCode": "2222"}]}}}`)

	rec, err := NewExtractor().Extract(doc, testISBN, "x")
	require.NoError(t, err)
	assert.Equal(t, "9999", rec.CCode)
}

func ptr(s string) *string {
	return &s
}
