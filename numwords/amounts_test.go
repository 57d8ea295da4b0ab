package numwords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertAmount(t *testing.T) {
	tests := []struct {
		amount string
		text   string
	}{
		{"0", "zero złotych zero groszy"},
		{"1", "jeden złoty zero groszy"},
		{"0.01", "zero złotych jeden grosz"},
		{"2.5", "dwa złote pięćdziesiąt groszy"},
		{"123.45", "sto dwadzieścia trzy złote czterdzieści pięć groszy"},
		{"123,45", "sto dwadzieścia trzy złote czterdzieści pięć groszy"},
		{"1000.999", "tysiąc złotych dziewięćdziesiąt dziewięć groszy"},
		{"22.22", "dwadzieścia dwa złote dwadzieścia dwa grosze"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			text, err := ConvertAmount(tt.amount, Zloty, Grosz)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestConvertAmountDigits(t *testing.T) {
	text, err := ConvertAmountDigits("123.45", Zloty)
	require.NoError(t, err)
	assert.Equal(t, "sto dwadzieścia trzy złote 45/100", text)

	text, err = ConvertAmountDigits("5", Zloty)
	require.NoError(t, err)
	assert.Equal(t, "pięć złotych 00/100", text)
}

func TestConvertAmountErrors(t *testing.T) {
	_, err := ConvertAmount("-1.00", Zloty, Grosz)
	assert.ErrorIs(t, err, ErrNegative)

	for _, in := range []string{"", "abc", "1.2.3", "1e3", "1E80", "0x10", ".5", "5.", "1,2,3", "-abc", "1 000"} {
		_, err := ConvertAmount(in, Zloty, Grosz)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
}

func TestParseAmountSign(t *testing.T) {
	_, err := ParseAmount("-0")
	assert.ErrorIs(t, err, ErrNegative)
	_, err = ParseNumber("-0")
	assert.ErrorIs(t, err, ErrNegative)

	d, err := ParseAmount("+2,50")
	require.NoError(t, err)
	assert.Equal(t, "2.5", d.String())
}

func TestParseAmountOverflow(t *testing.T) {
	max := MaxSupported().String()

	d, err := ParseAmount("000" + max + ".99")
	require.NoError(t, err)
	assert.Equal(t, max+".99", d.String())

	_, err = ParseAmount("1" + strings.Repeat("0", 3*MaxGroups) + ".00")
	assert.ErrorIs(t, err, ErrOverflow)

	huge := strings.Repeat("1", 2000000)
	_, err = ConvertAmount(huge, Zloty, Grosz)
	require.ErrorIs(t, err, ErrOverflow)
	assert.Less(t, len(err.Error()), 200)
}
