package models

import "strings"

// IngredientSet holds normalized (trimmed, lowercased) ingredient tokens in first-seen order.
type IngredientSet struct {
	tokens []string
	index  map[string]struct{}
}

// NormalizeIngredient is the token form used on both sides of a containment check.
func NormalizeIngredient(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseIngredients splits a comma separated ingredient string such as "Telur, Tomat".
func ParseIngredients(raw string) IngredientSet {
	set := IngredientSet{index: make(map[string]struct{})}
	for _, part := range strings.Split(raw, ",") {
		tok := NormalizeIngredient(part)
		if tok == "" {
			continue
		}
		if _, dup := set.index[tok]; dup {
			continue
		}
		set.index[tok] = struct{}{}
		set.tokens = append(set.tokens, tok)
	}
	return set
}

// Contains reports an exact token match after normalization.
func (s IngredientSet) Contains(ingredient string) bool {
	_, ok := s.index[NormalizeIngredient(ingredient)]
	return ok
}

// ContainsAll is true when every filter element is in the set; an empty filter always matches.
func (s IngredientSet) ContainsAll(filter []string) bool {
	for _, f := range filter {
		if !s.Contains(f) {
			return false
		}
	}
	return true
}

func (s IngredientSet) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

func (s IngredientSet) Len() int {
	return len(s.tokens)
}
