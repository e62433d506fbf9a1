package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alex() Profile {
	return Profile{
		Name:              "Alex Chen",
		Age:               15,
		Grade:             10,
		LearningStyle:     "visual",
		Interests:         []string{"video games", "basketball", "space exploration"},
		Strengths:         []string{"problem solving", "creativity"},
		GrowthAreas:       []string{"mathematical formulas", "writing detailed explanations"},
		PreferredExamples: "technology and sports-related",
	}
}

func TestIsZero(t *testing.T) {
	assert.True(t, Profile{}.IsZero())
	assert.False(t, alex().IsZero())
	assert.False(t, Profile{Extra: map[string]any{"school": "Lincoln High"}}.IsZero())
}

func TestMarshalJSON_KnownFieldsInOrder(t *testing.T) {
	data, err := json.Marshal(Profile{Name: "Alex Chen", Age: 15, LearningStyle: "visual"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Alex Chen","age":15,"learning_style":"visual"}`, string(data))
}

func TestMarshalJSON_FlattensExtra(t *testing.T) {
	p := Profile{
		Name: "Sam",
		Extra: map[string]any{
			"school":         "Lincoln High",
			"accommodations": []string{"extra time"},
		},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"Sam","accommodations":["extra time"],"school":"Lincoln High"}`,
		string(data))
}

func TestMarshalJSON_OnlyExtra(t *testing.T) {
	data, err := json.Marshal(Profile{Extra: map[string]any{"reading_level": "advanced"}})
	require.NoError(t, err)
	assert.Equal(t, `{"reading_level":"advanced"}`, string(data))
}

func TestUnmarshalJSON_RoutesUnknownAndMistypedKeys(t *testing.T) {
	var p Profile
	err := json.Unmarshal([]byte(`{
		"name": "Alex Chen",
		"age": 15,
		"grade": "10th",
		"interests": ["basketball"],
		"favorite_planet": "Mars"
	}`), &p)
	require.NoError(t, err)

	assert.Equal(t, "Alex Chen", p.Name)
	assert.Equal(t, 15, p.Age)
	assert.Equal(t, 0, p.Grade)
	assert.Equal(t, []string{"basketball"}, p.Interests)
	assert.Equal(t, map[string]any{"grade": "10th", "favorite_planet": "Mars"}, p.Extra)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Alex Chen",
		"age": 15,
		"grade": "10th",
		"interests": ["basketball"],
		"favorite_planet": "Mars"
	}`, string(out))
}

func TestMarshalJSON_TypedFieldWinsOverExtra(t *testing.T) {
	p := Profile{Name: "Alex", Extra: map[string]any{"name": "shadow", "age": "fifteen"}}

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Alex","age":"fifteen"}`, string(out))
}

func TestMapRoundTrip(t *testing.T) {
	p := alex()
	p.Extra = map[string]any{"school": "Lincoln High"}

	m := p.Map()
	assert.Equal(t, "Alex Chen", m["name"])
	assert.Equal(t, "Lincoln High", m["school"])
	assert.Equal(t, p, FromMap(m))
}

func TestClone(t *testing.T) {
	p := alex()
	c := p.Clone()
	c.Interests[0] = "chess"
	assert.Equal(t, "video games", p.Interests[0])
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Alex Chen
age: 15
grade: 10
learning_style: visual
interests:
  - video games
  - basketball
areas_for_growth:
  - mathematical formulas
mentor: Ms. Rivera
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Alex Chen", p.Name)
	assert.Equal(t, 10, p.Grade)
	assert.Equal(t, []string{"video games", "basketball"}, p.Interests)
	assert.Equal(t, []string{"mathematical formulas"}, p.GrowthAreas)
	assert.Equal(t, map[string]any{"mentor": "Ms. Rivera"}, p.Extra)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alex.json")
	data, err := json.Marshal(alex())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, alex(), p)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, 2]`), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	_, err = Parse([]byte("name: x"), "toml")
	assert.Error(t, err)
}
