package numwords

import (
	"fmt"
	"math/big"
)

var (
	thousand     = big.NewInt(1000)
	maxSupported = MaxSupported()
)

// shortNumber renders long digit strings as a prefix and a digit count so
// that rejected input does not end up whole in error messages.
func shortNumber(s string) string {
	const keep = 24
	if len(s) <= keep {
		return s
	}
	return fmt.Sprintf("%s... (%d digits)", s[:keep], len(s))
}

// describeBig is shortNumber for values that may be too large to format cheaply.
func describeBig(n *big.Int) string {
	if n.BitLen() > 1024 {
		return fmt.Sprintf("%d-bit number", n.BitLen())
	}
	return shortNumber(n.String())
}

// SplitToGroups splits n into base-1000 groups, most significant first.
// Zero yields the single group [0].
func SplitToGroups(n *big.Int) ([]int, error) {
	if n == nil {
		return nil, fmt.Errorf("nil number: %w", ErrMalformed)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%s: %w", describeBig(n), ErrNegative)
	}
	if n.Sign() == 0 {
		return []int{0}, nil
	}

	if n.Cmp(maxSupported) > 0 {
		return nil, fmt.Errorf("%s needs more than %d groups: %w", describeBig(n), MaxGroups, ErrOverflow)
	}

	rest := new(big.Int).Set(n)
	tail := new(big.Int)
	groups := []int{}
	for rest.Sign() != 0 {
		rest.QuoRem(rest, thousand, tail)
		groups = append([]int{int(tail.Int64())}, groups...)
	}
	return groups, nil
}

// DisassembleGroup breaks a 0..999 group into the base-word keys read aloud,
// e.g. 853 -> [800 50 3], 212 -> [200 12], 300 -> [300]. Zero yields an empty list.
func DisassembleGroup(group int) ([]int, error) {
	if group < 0 || group > 999 {
		return nil, fmt.Errorf("%d: %w", group, ErrGroupOutOfRange)
	}

	elements := []int{}
	tail := group % 100
	if hundreds := group - tail; hundreds != 0 {
		elements = append(elements, hundreds)
	}

	switch {
	case tail == 0:
	case tail <= 20:
		elements = append(elements, tail)
	default:
		units := tail % 10
		elements = append(elements, tail-units)
		if units != 0 {
			elements = append(elements, units)
		}
	}
	return elements, nil
}
