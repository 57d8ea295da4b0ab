package numwords

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Polish currency units.
var (
	Zloty = GrammaticalForm{NominativeSingular: "złoty", NominativePlural: "złote", GenitivePlural: "złotych"}
	Grosz = GrammaticalForm{NominativeSingular: "grosz", NominativePlural: "grosze", GenitivePlural: "groszy"}
)

// minorUnits is the number of fractional digits kept in an amount.
const minorUnits = 2

// amountShape is the textual form of an amount: digits with an optional
// fraction after a dot or a comma. Exponents and other bases are rejected.
var amountShape = regexp.MustCompile(`^[0-9]+([.,][0-9]+)?$`)

// ParseAmount parses a non-negative decimal amount, accepting either a dot
// or a comma as the decimal separator. Fraction digits beyond the second
// are truncated. Amounts whose integer part cannot be spelled out fail with
// ErrOverflow.
func ParseAmount(amount string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amount)
	body, negative := strings.CutPrefix(s, "-")
	if !negative {
		body = strings.TrimPrefix(body, "+")
	}
	if !amountShape.MatchString(body) {
		return decimal.Zero, fmt.Errorf("%q: %w", shortNumber(s), ErrMalformed)
	}
	if negative {
		return decimal.Zero, fmt.Errorf("%q: %w", shortNumber(s), ErrNegative)
	}

	whole, _, _ := strings.Cut(strings.Replace(body, ",", ".", 1), ".")
	if len(strings.TrimLeft(whole, "0")) > 3*MaxGroups {
		return decimal.Zero, fmt.Errorf("%q needs more than %d groups: %w", shortNumber(s), MaxGroups, ErrOverflow)
	}

	d, err := decimal.NewFromString(strings.Replace(body, ",", ".", 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", shortNumber(s), ErrMalformed)
	}
	return d.Truncate(minorUnits), nil
}

// splitAmount returns the integer part and the fraction in minor units (0..99).
func splitAmount(d decimal.Decimal) (decimal.Decimal, int64) {
	whole := d.Truncate(0)
	return whole, d.Sub(whole).Shift(minorUnits).IntPart()
}

// ConvertAmount spells out a monetary amount with both parts in words:
// "123.45" -> "sto dwadzieścia trzy złote czterdzieści pięć groszy".
func ConvertAmount(amount string, major, minor GrammaticalForm) (string, error) {
	d, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	whole, frac := splitAmount(d)

	majorWords, err := ConvertNumberToWords(whole.BigInt(), &major)
	if err != nil {
		return "", err
	}
	minorWords, err := ConvertNumberToWords(decimal.NewFromInt(frac).BigInt(), &minor)
	if err != nil {
		return "", err
	}
	return strings.Join(append(majorWords, minorWords...), " "), nil
}

// ConvertAmountDigits is the invoice layout of ConvertAmount, with the
// fraction kept as digits: "sto dwadzieścia trzy złote 45/100".
func ConvertAmountDigits(amount string, major GrammaticalForm) (string, error) {
	d, err := ParseAmount(amount)
	if err != nil {
		return "", err
	}
	whole, frac := splitAmount(d)

	words, err := ConvertNumberToWords(whole.BigInt(), &major)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %02d/100", strings.Join(words, " "), frac), nil
}
