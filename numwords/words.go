// Package numwords spells out non-negative integers in Polish, with the
// scale names and an optional trailing unit inflected to agree with the
// preceding numeral ("dwa tysiące", "pięć tysięcy", "trzy metry").
//
// All tables are immutable and every function is safe for concurrent use.
package numwords

import (
	"fmt"
	"math/big"
	"strings"
)

// GenerateWordsForGroup renders the elements of one group. When extra is
// given, the scale name (or unit) is appended in the form agreeing with the
// last element; a lone 1 followed by a scale name renders as the name only
// ("tysiąc", not "jeden tysiąc").
func GenerateWordsForGroup(elements []int, extra *GrammaticalForm) ([]string, error) {
	if len(elements) == 0 {
		return nil, ErrEmptyGroup
	}

	if extra != nil && len(elements) == 1 && elements[0] == 1 {
		return []string{extra.NominativeSingular}, nil
	}

	words := make([]string, 0, len(elements)+1)
	for _, e := range elements {
		w, ok := baseWords[e]
		if !ok {
			return nil, fmt.Errorf("%d: %w", e, ErrUnknownElement)
		}
		words = append(words, w)
	}

	if extra != nil {
		words = append(words, agree(elements, extra))
	}
	return words, nil
}

// agree picks the plural form for a noun following elements. Only a final
// element of exactly 2, 3 or 4 selects the nominative plural.
func agree(elements []int, f *GrammaticalForm) string {
	if len(elements) > 0 {
		if last := elements[len(elements)-1]; last >= 2 && last <= 4 {
			return f.NominativePlural
		}
	}
	return f.GenitivePlural
}

// ConvertNumberToWords spells out n, followed by unit in the agreeing form
// when unit is not nil.
func ConvertNumberToWords(n *big.Int, unit *GrammaticalForm) ([]string, error) {
	groups, err := SplitToGroups(n)
	if err != nil {
		return nil, err
	}

	if n.Sign() == 0 {
		words := []string{baseWords[0]}
		if unit != nil {
			words = append(words, unit.GenitivePlural)
		}
		return words, nil
	}

	var words []string
	var last []int
	for i, g := range groups {
		elements, err := DisassembleGroup(g)
		if err != nil {
			return nil, err
		}
		last = elements
		if len(elements) == 0 {
			continue
		}
		gw, err := GenerateWordsForGroup(elements, Scale(len(groups)-1-i))
		if err != nil {
			return nil, err
		}
		words = append(words, gw...)
	}

	if unit != nil {
		if n.IsInt64() && n.Int64() == 1 {
			words = append(words, unit.NominativeSingular)
		} else {
			words = append(words, agree(last, unit))
		}
	}
	return words, nil
}

// ConvertNumber is ConvertNumberToWords joined with single spaces.
func ConvertNumber(n *big.Int, unit *GrammaticalForm) (string, error) {
	words, err := ConvertNumberToWords(n, unit)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// ConvertUint64 converts a machine integer.
func ConvertUint64(n uint64, unit *GrammaticalForm) (string, error) {
	return ConvertNumber(new(big.Int).SetUint64(n), unit)
}

// ConvertInt64 converts a signed machine integer; negative values fail with ErrNegative.
func ConvertInt64(n int64, unit *GrammaticalForm) (string, error) {
	return ConvertNumber(big.NewInt(n), unit)
}

// ConvertString converts a base-10 digit string such as "35302" or "+7".
// Surrounding whitespace is ignored; anything else but digits is rejected.
func ConvertString(s string, unit *GrammaticalForm) (string, error) {
	n, err := ParseNumber(s)
	if err != nil {
		return "", err
	}
	return ConvertNumber(n, unit)
}

// ParseNumber parses the digit strings accepted by ConvertString.
func ParseNumber(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		if digitsOnly(s[1:]) {
			return nil, fmt.Errorf("%q: %w", shortNumber(s), ErrNegative)
		}
		return nil, fmt.Errorf("%q: %w", shortNumber(s), ErrMalformed)
	}
	s = strings.TrimPrefix(s, "+")
	if !digitsOnly(s) {
		return nil, fmt.Errorf("%q: %w", shortNumber(s), ErrMalformed)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%q: %w", shortNumber(s), ErrMalformed)
	}
	return n, nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaxSupported returns the largest number the scale table can spell out.
func MaxSupported() *big.Int {
	max := new(big.Int).Exp(big.NewInt(1000), big.NewInt(MaxGroups), nil)
	return max.Sub(max, big.NewInt(1))
}
