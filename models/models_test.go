package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDietType(t *testing.T) {
	for _, in := range []string{"cutting", "CUTTING", "Cutting", "  cUtTiNg "} {
		got, err := ParseDietType(in)
		require.NoError(t, err, in)
		assert.Equal(t, DietCutting, got)
	}

	_, err := ParseDietType("keto")
	assert.ErrorIs(t, err, ErrUnknownDietType)
	_, err = ParseDietType("")
	assert.ErrorIs(t, err, ErrUnknownDietType)
}

func TestDietTypeEqual(t *testing.T) {
	assert.True(t, DietType("bulking").Equal(DietBulking))
	assert.False(t, DietCutting.Equal(DietBulking))
	assert.True(t, DietType(" ").IsZero())
	assert.Equal(t, "Maintaining", DietMaintaining.String(), "display keeps case")
}

func TestParseIngredients(t *testing.T) {
	set := ParseIngredients(" Telur, Tomat ,,telur, Daging Sapi")

	assert.Equal(t, []string{"telur", "tomat", "daging sapi"}, set.Tokens())
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.Contains("TELUR"))
	assert.True(t, set.Contains(" daging sapi "))
	assert.False(t, set.Contains("daging"), "tokens match exactly, not by substring")
}

func TestContainsAll(t *testing.T) {
	set := ParseIngredients("Telur, Tomat")

	tests := []struct {
		name   string
		filter []string
		want   bool
	}{
		{"empty filter", nil, true},
		{"single", []string{"tomat"}, true},
		{"all present", []string{"Tomat", "telur"}, true},
		{"one missing", []string{"tomat", "wortel"}, false},
		{"missing", []string{"daging sapi"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.ContainsAll(tt.filter))
		})
	}

	assert.False(t, ParseIngredients("").ContainsAll([]string{"telur"}))
	assert.True(t, ParseIngredients("").ContainsAll(nil))
}

func TestMealIngredientSet(t *testing.T) {
	m := Meal{Ingredients: "Daging Ayam, Wortel"}
	assert.True(t, m.IngredientSet().Contains("wortel"))
}

func TestMealRecordKeepsUnknownFields(t *testing.T) {
	in := `{"name":"Omelette","diet_type":"Cutting","bahan_resep_pilihan":"Telur","calories":"250",` +
		`"protein":"n/a","chef":"Sari","tags":["quick"]}`

	var m Meal
	require.NoError(t, json.Unmarshal([]byte(in), &m))
	assert.Equal(t, "Omelette", m.Name)
	assert.InDelta(t, 250, m.Calories, 0.001)
	assert.Zero(t, m.Protein)
	assert.JSONEq(t, `"n/a"`, string(m.Extra["protein"]))
	assert.JSONEq(t, `"Sari"`, string(m.Extra["chef"]))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "Sari", back["chef"])
	assert.Equal(t, []any{"quick"}, back["tags"])
	assert.InDelta(t, 250, back["calories"], 0.001)
	// a value that does not fit its column is passed through as stored
	assert.Equal(t, "n/a", back["protein"])
}

func TestWorkoutRecordCoercesNumbers(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		sets   int
		extras []string
	}{
		{"number", `{"sets":4}`, 4, nil},
		{"string number", `{"sets":" 4 "}`, 4, nil},
		{"integral float", `{"sets":4.0}`, 4, nil},
		{"empty string", `{"sets":""}`, 0, nil},
		{"fraction", `{"sets":4.5}`, 0, []string{"sets"}},
		{"word", `{"sets":"four"}`, 0, []string{"sets"}},
		{"non-string name", `{"sets":3,"name":12}`, 3, []string{"name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w Workout
			require.NoError(t, json.Unmarshal([]byte(tt.in), &w))
			assert.Equal(t, tt.sets, w.Sets)
			for _, k := range tt.extras {
				assert.Contains(t, w.Extra, k)
			}
			if tt.extras == nil {
				assert.Empty(t, w.Extra)
			}
		})
	}
}

func TestMealRecordRejectsNonObject(t *testing.T) {
	var m Meal
	assert.Error(t, json.Unmarshal([]byte(`"just a string"`), &m))
}
