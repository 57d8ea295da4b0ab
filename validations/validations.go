// Package validations provide validation functions for conversion requests,
// both as plain predicates and as go-playground/validator tags.
package validations

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/remiges-tech/slownie/numwords"
)

var (
	// Compile regex pattern for unit catalogue keys
	regexUnitKey = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

	// Compile regex pattern for amounts: digits, optional dot or comma and up to two fraction digits
	regexAmount = regexp.MustCompile(`^[0-9]+([.,][0-9]{1,2})?$`)
)

// Validation tags registered by RegisterValidations.
const (
	TagNumeral    = "numeral"
	TagMaxNumeral = "maxnumeral"
	TagAmount     = "amount"
	TagUnitKey    = "unitkey"
)

// IsValidNumeral checks if val is a non-negative base-10 number small
// enough to be spelled out.
// val: the string to be validated.
// returns: a boolean indicating whether numwords can convert val.
func IsValidNumeral(val string) bool {
	return isNumeral(val) && isWithinRange(val)
}

func isNumeral(val string) bool {
	_, err := numwords.ParseNumber(val)
	return err == nil
}

func isWithinRange(val string) bool {
	n, err := numwords.ParseNumber(val)
	if err != nil {
		return false
	}
	return n.Cmp(numwords.MaxSupported()) <= 0
}

// IsValidAmount checks if val is a non-negative amount with at most two
// fraction digits, using a dot or a comma as the separator.
func IsValidAmount(val string) bool {
	if !regexAmount.MatchString(val) {
		return false
	}
	_, err := numwords.ParseAmount(val)
	return err == nil
}

// IsValidUnitKey checks if val is shaped like a unit catalogue key.
func IsValidUnitKey(val string) bool {
	return regexUnitKey.MatchString(val)
}

// RegisterValidations adds the custom tags to v. numeral only checks the
// syntax of a number; combine it with maxnumeral to report numbers too
// large to spell out under their own tag.
func RegisterValidations(v *validator.Validate) error {
	return errors.Join(
		v.RegisterValidation(TagNumeral, func(fl validator.FieldLevel) bool {
			return isNumeral(fl.Field().String())
		}),
		v.RegisterValidation(TagMaxNumeral, func(fl validator.FieldLevel) bool {
			return isWithinRange(fl.Field().String())
		}),
		v.RegisterValidation(TagAmount, func(fl validator.FieldLevel) bool {
			return IsValidAmount(fl.Field().String())
		}),
		v.RegisterValidation(TagUnitKey, func(fl validator.FieldLevel) bool {
			return IsValidUnitKey(fl.Field().String())
		}),
	)
}
