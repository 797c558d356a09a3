package isbn

import (
	"fmt"

	"github.com/lepinkainen/hondana/internal/book"
)

// ConvertISBN13To10 drops the 978 prefix and recomputes the mod-11 check digit.
func ConvertISBN13To10(isbn13 string) (string, error) {
	if !IsValid13(isbn13) {
		return "", fmt.Errorf("%w: %q", book.ErrInvalidISBN, isbn13)
	}

	body := isbn13[3:12]

	sum := 0
	for i := 0; i < len(body); i++ {
		sum += int(body[i]-'0') * (10 - i)
	}

	var check string
	switch d := 11 - sum%11; d {
	case 10:
		check = "X"
	case 11:
		check = "0"
	default:
		check = string(rune('0' + d))
	}

	return body + check, nil
}
