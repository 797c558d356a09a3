package book

// Defaults are the fallback values applied when the source document leaves a
// field out.
type Defaults struct {
	Title        string
	AudienceType int
	AudienceCode int
	CCode        string
	NoImage      string
}

// DefaultValues matches the values the books table was designed around.
var DefaultValues = Defaults{
	Title:        "名無しの本",
	AudienceType: 99,
	AudienceCode: 99,
	CCode:        "9999",
	NoImage:      "no_image.png",
}
