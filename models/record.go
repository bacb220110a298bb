package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

type fieldKind int

const (
	textField fieldKind = iota
	floatField
	intField
)

var mealFields = map[string]fieldKind{
	"key":                 textField,
	"name":                textField,
	"description":         textField,
	"diet_type":           textField,
	"bahan_resep_pilihan": textField,
	"calories":            floatField,
	"protein":             floatField,
	"carbs":               floatField,
	"fat":                 floatField,
	"recipe":              textField,
	"image_url":           textField,
}

var workoutFields = map[string]fieldKind{
	"key":              textField,
	"name":             textField,
	"description":      textField,
	"diet_type":        textField,
	"duration_minutes": intField,
	"sets":             intField,
	"reps":             intField,
	"image_url":        textField,
}

// decodeRecord fills the typed fields of v from a corpus record. Numbers
// stored as strings are accepted. Fields v has no column for, and values that
// do not fit their column, are returned untouched so they still reach clients.
func decodeRecord(data []byte, v any, fields map[string]fieldKind) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var extra map[string]json.RawMessage
	keep := func(k string, val json.RawMessage) {
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = val
	}

	known := make(map[string]json.RawMessage, len(raw))
	for k, val := range raw {
		kind, ok := fields[k]
		if !ok {
			keep(k, val)
			continue
		}
		fixed, ok := coerceField(val, kind)
		if !ok {
			keep(k, val)
			continue
		}
		known[k] = fixed
	}

	typed, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(typed, v); err != nil {
		return nil, err
	}
	return extra, nil
}

func coerceField(val json.RawMessage, kind fieldKind) (json.RawMessage, bool) {
	s := bytes.TrimSpace(val)
	if string(s) == "null" {
		return s, true
	}
	if kind == textField {
		return s, len(s) > 0 && s[0] == '"'
	}

	num := string(s)
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(s, &str); err != nil {
			return nil, false
		}
		num = strings.TrimSpace(str)
		if num == "" {
			return json.RawMessage("null"), true
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	if kind == intField {
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return nil, false
		}
		return json.RawMessage(strconv.FormatInt(int64(f), 10)), true
	}
	return json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64)), true
}

// encodeRecord writes v and then any extra fields it does not already carry.
func encodeRecord(v any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, ok := merged[k]; !ok {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}

func (m *Meal) UnmarshalJSON(data []byte) error {
	type plain Meal
	var p plain
	extra, err := decodeRecord(data, &p, mealFields)
	if err != nil {
		return err
	}
	*m = Meal(p)
	m.Extra = extra
	return nil
}

func (m Meal) MarshalJSON() ([]byte, error) {
	type plain Meal
	return encodeRecord(plain(m), m.Extra)
}

func (w *Workout) UnmarshalJSON(data []byte) error {
	type plain Workout
	var p plain
	extra, err := decodeRecord(data, &p, workoutFields)
	if err != nil {
		return err
	}
	*w = Workout(p)
	w.Extra = extra
	return nil
}

func (w Workout) MarshalJSON() ([]byte, error) {
	type plain Workout
	return encodeRecord(plain(w), w.Extra)
}
