package extract

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/anikatalog/anikatalog/source"
)

const (
	hasMoreSelector  = ".hpage .r"
	nextPageSelector = ".pagination .next"
)

// Image resolves an image URL, preferring the lazy-load attribute.
// Scheme-relative URLs get an https scheme.
func Image(img *goquery.Selection) string {
	var url string
	if src, ok := img.Attr("data-src"); ok && strings.TrimSpace(src) != "" {
		url = src
	} else {
		url = img.AttrOr("src", "")
	}

	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "//") {
		url = "https:" + url
	}

	return url
}

// Labeled finds the first fragment starting with "label:" (case-insensitive)
// and returns the trimmed text after its first colon.
func Labeled(fragments *goquery.Selection, label string) (string, bool) {
	match := labeledFragment(fragments, label)
	if match == nil {
		return "", false
	}

	_, value, _ := strings.Cut(match.Text(), ":")
	return strings.TrimSpace(value), true
}

// LabeledOr is Labeled with a fallback for missing or empty values.
func LabeledOr(fragments *goquery.Selection, label, fallback string) string {
	value, ok := Labeled(fragments, label)
	if !ok || value == "" {
		return fallback
	}
	return value
}

// LabeledLink returns the anchor text of the fragment labeled label, or "".
func LabeledLink(fragments *goquery.Selection, label string) string {
	match := labeledFragment(fragments, label)
	if match == nil {
		return ""
	}

	return strings.TrimSpace(match.Find("a").Text())
}

func labeledFragment(fragments *goquery.Selection, label string) *goquery.Selection {
	prefix := strings.ToLower(label) + ":"

	var match *goquery.Selection
	fragments.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		if strings.HasPrefix(text, prefix) {
			match = s
			return false
		}
		return true
	})

	return match
}

// HasNext reports whether the page exposes a next-page control.
func HasNext(page *goquery.Selection) bool {
	return page.Find(hasMoreSelector).Length() > 0 ||
		page.Find(nextPageSelector).Length() > 0
}

// Day normalizes a schedule block header into a schedule key.
// The result is not validated; callers check Day.Valid.
func Day(header string) source.Day {
	day := strings.ToLower(header)
	day = strings.ReplaceAll(day, "update acak", string(source.Random))
	day = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, day)

	return source.Day(strings.TrimSpace(day))
}

// Rating parses texts like "Rating 8.12". Unparsable text yields 0.
func Rating(text string) float64 {
	fields := strings.Fields(text)

	if len(fields) >= 2 {
		if rating, err := strconv.ParseFloat(fields[1], 64); err == nil {
			return rating
		}
	}

	if rating, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
		return rating
	}

	return 0
}
