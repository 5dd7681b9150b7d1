package domain

import (
	"strconv"
	"strings"
)

// splitQuantity parses the leading integer of a freeform quantity such as
// "2 lbs". A decimal prefix ("1.5 kg") is not adjustable.
func splitQuantity(quantity string) (int, string, bool) {
	quantity = strings.TrimSpace(quantity)

	end := 0
	for end < len(quantity) && quantity[end] >= '0' && quantity[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, "", false
	}

	rest := quantity[end:]
	if strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ",") {
		return 0, "", false
	}

	value, err := strconv.Atoi(quantity[:end])
	if err != nil {
		return 0, "", false
	}
	return value, strings.TrimSpace(rest), true
}

// CanIncrement reports whether the quantity has a numeric prefix.
func CanIncrement(quantity string) bool {
	_, _, ok := splitQuantity(quantity)
	return ok
}

// CanDecrement reports whether the quantity has a numeric prefix above 1.
func CanDecrement(quantity string) bool {
	value, _, ok := splitQuantity(quantity)
	return ok && value > 1
}

// StepQuantity adds delta to the numeric prefix, keeping the unit. It refuses
// non-numeric quantities and results below 1.
func StepQuantity(quantity string, delta int) (string, bool) {
	value, unit, ok := splitQuantity(quantity)
	if !ok {
		return quantity, false
	}

	next := value + delta
	if next < 1 {
		return quantity, false
	}

	return strings.TrimSpace(strconv.Itoa(next) + " " + unit), true
}
