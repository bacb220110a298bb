package models

import (
	"errors"
	"strings"
)

// DietType is a dietary regimen such as "Cutting". Stored and displayed as given,
// compared case-insensitively.
type DietType string

const (
	DietCutting     DietType = "Cutting"
	DietBulking     DietType = "Bulking"
	DietMaintaining DietType = "Maintaining"
)

// KnownDietTypes lists the regimens the corpus is curated for.
var KnownDietTypes = []DietType{DietCutting, DietBulking, DietMaintaining}

var ErrUnknownDietType = errors.New("unknown diet type")

// ParseDietType resolves s case-insensitively to one of KnownDietTypes.
func ParseDietType(s string) (DietType, error) {
	d := DietType(s)
	for _, known := range KnownDietTypes {
		if known.Equal(d) {
			return known, nil
		}
	}
	return "", ErrUnknownDietType
}

// Key is the normalized form used for comparisons.
func (d DietType) Key() string {
	return strings.ToLower(strings.TrimSpace(string(d)))
}

func (d DietType) IsZero() bool {
	return d.Key() == ""
}

func (d DietType) Equal(other DietType) bool {
	return d.Key() == other.Key()
}

func (d DietType) String() string {
	return string(d)
}
