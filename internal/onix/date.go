package onix

import "time"

const (
	dayLayout   = "20060102"
	monthLayout = "200601"
)

// ParsePublishingDate reads an all-digit YYYYMMDD or YYYYMM string. Month
// precision resolves to the first of the month. Anything else, including
// impossible calendar dates, is reported as absent.
func ParsePublishingDate(s string) (time.Time, bool) {
	var layout string
	switch len(s) {
	case len(dayLayout):
		layout = dayLayout
	case len(monthLayout):
		layout = monthLayout
	default:
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
