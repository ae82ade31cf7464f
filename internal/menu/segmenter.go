// Package menu turns raw OCR text into structured menu items.
//
// The segmenter is a heuristic line classifier: menus are visually laid out
// as name/description blocks followed by a trailing price, and a greedy
// single-lookback pass over classified lines approximates that layout
// without true spatial analysis. It is a pure function of its input text;
// identical input always yields an identical item sequence.
package menu

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"menulens/internal/domain"
)

// priceRE matches a currency symbol adjacent to an amount (before or after,
// optional whitespace, optional two-decimal fraction), or an amount followed
// by a three-letter currency code.
var priceRE = regexp.MustCompile(`[$€£¥₹]\s*\d+(?:\.\d{2})?|\d+(?:\.\d{2})?\s*[$€£¥₹]|\d+(?:\.\d{2})?\s*(?:USD|EUR|GBP|JPY|INR)`)

// minLineRunes is the shortest line considered meaningful; anything below is
// treated as OCR noise.
const minLineRunes = 3

// descriptionRunes is the length beyond which a priceless line reads as a
// description rather than an item name.
const descriptionRunes = 20

type lineKind int

const (
	titleLine lineKind = iota
	priceLine
	descriptionLine
)

func classify(line string) lineKind {
	switch {
	case priceRE.MatchString(line):
		return priceLine
	case utf8.RuneCountInString(line) > descriptionRunes:
		return descriptionLine
	default:
		return titleLine
	}
}

// FindPrice returns the first price token in line, or "" when none matches.
func FindPrice(line string) string {
	return priceRE.FindString(line)
}

// Segment splits OCR text into ordered menu items.
//
// Lines are trimmed and classified in precedence order as price lines,
// description lines (longer than 20 characters without a price), or title
// lines. A single open item accumulates state:
//
//   - a price line closes the open item, recording the matched price token
//     and the accumulated name plus price line as FullText
//   - a description line opens a new item when none is open
//   - a title line sets (or overwrites) the open item's name, opening a new
//     item if needed
//
// A description line arriving while an item is already open is silently
// dropped, as is a price line with no open item. An item still open at end
// of input is flushed as a partial record without price or full text.
//
// Segment is total: the worst case is an empty slice, never an error.
func Segment(text string) []domain.MenuItem {
	items := []domain.MenuItem{}
	var current *domain.MenuItem

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if utf8.RuneCountInString(line) < minLineRunes {
			continue
		}

		switch kind := classify(line); {
		case kind == priceLine && current != nil:
			current.Price = priceRE.FindString(line)
			current.FullText = current.Name + " " + line
			items = append(items, *current)
			current = nil

		case kind == descriptionLine && current == nil:
			current = &domain.MenuItem{Description: line}

		case kind == titleLine:
			if current != nil {
				current.Name = line
			} else {
				current = &domain.MenuItem{Name: line}
			}
		}
	}

	if current != nil {
		items = append(items, *current)
	}
	return items
}
