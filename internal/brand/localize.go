// Package brand turns brand names into their Cyrillic display form.
package brand

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// transliterator applies the Latin to Cyrillic rules. strings.Replacer scans
// left to right and tries the pairs in argument order at each position, so the
// multi-letter sequences are listed first.
var transliterator = strings.NewReplacer(
	"sch", "ш", "sh", "ш", "ch", "ч", "ya", "я", "yu", "ю", "yo", "ё",
	"kh", "х", "ts", "ц", "ph", "ф", "th", "т",
	"a", "а", "b", "б", "c", "к", "d", "д", "e", "е", "f", "ф",
	"g", "г", "h", "х", "i", "и", "j", "дж", "k", "к", "l", "л",
	"m", "м", "n", "н", "o", "о", "p", "п", "q", "к", "r", "р",
	"s", "с", "t", "т", "u", "у", "v", "в", "w", "в", "x", "кс",
	"y", "и", "z", "з",
)

// Normalize returns the lookup key for a brand: trimmed, lowercased, with
// '-' and '&' folded to spaces and whitespace collapsed.
func Normalize(brand string) string {
	key := strings.ToLower(strings.TrimSpace(brand))
	key = strings.NewReplacer("-", " ", "&", " ").Replace(key)
	return strings.Join(strings.Fields(key), " ")
}

// IsCyrillic reports whether s contains at least one Russian letter.
func IsCyrillic(s string) bool {
	for _, r := range s {
		if (r >= 'А' && r <= 'я') || r == 'Ё' || r == 'ё' {
			return true
		}
	}
	return false
}

// Guess transliterates a Latin brand name word by word. Names that already
// contain Cyrillic letters are returned as given.
func Guess(brand string) string {
	if IsCyrillic(brand) {
		return brand
	}

	words := strings.Fields(Normalize(brand))
	for i, w := range words {
		words[i] = capitalize(transliterator.Replace(w))
	}
	return strings.Join(words, " ")
}

// capitalize upper-cases the first rune of a word. The rest is already lower
// case after Normalize. Casers keep state, so one is built per call.
func capitalize(word string) string {
	r, n := utf8.DecodeRuneInString(word)
	if n == 0 {
		return word
	}
	return cases.Upper(language.Russian).String(string(r)) + word[n:]
}

// Localizer resolves display names using the persisted overrides first.
type Localizer struct {
	store *MapStore
}

// NewLocalizer returns a Localizer backed by store. A nil store means every
// brand goes through Guess.
func NewLocalizer(store *MapStore) *Localizer {
	return &Localizer{store: store}
}

// Localize never fails: unknown brands fall back to Guess.
func (l *Localizer) Localize(brand string) string {
	if l.store != nil {
		if v, ok := l.store.Get(Normalize(brand)); ok {
			return v
		}
	}
	return Guess(brand)
}
