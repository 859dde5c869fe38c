package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestIDListJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  IDList
	}{
		{name: "scalar", input: `{"memberOf": "c"}`, want: IDList{"c"}},
		{name: "array", input: `{"memberOf": ["c", "d"]}`, want: IDList{"c", "d"}},
		{name: "empty string", input: `{"memberOf": ""}`, want: nil},
		{name: "null", input: `{"memberOf": null}`, want: nil},
		{name: "absent", input: `{}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Element
			require.NoError(t, json.Unmarshal([]byte(tt.input), &e))
			assert.Equal(t, tt.want, e.MemberOf)
		})
	}
}

func TestIDListJSONRejectsNumbers(t *testing.T) {
	var e Element
	err := json.Unmarshal([]byte(`{"memberOf": 7}`), &e)
	assert.Error(t, err)
}

func TestIDListYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  IDList
	}{
		{name: "scalar", input: "memberOf: c\n", want: IDList{"c"}},
		{name: "flow sequence", input: "memberOf: [c, d]\n", want: IDList{"c", "d"}},
		{name: "block sequence", input: "memberOf:\n  - c\n  - d\n", want: IDList{"c", "d"}},
		{name: "null", input: "memberOf:\n", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Element
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &e))
			assert.Equal(t, tt.want, e.MemberOf)
		})
	}
}

func TestIDListYAMLRejectsMapping(t *testing.T) {
	var e Element
	err := yaml.Unmarshal([]byte("memberOf:\n  a: b\n"), &e)
	assert.Error(t, err)
}

func TestRefValue(t *testing.T) {
	assert.True(t, SingleRef("").IsNone())
	assert.True(t, ManyRef(nil).IsNone())
	assert.True(t, ManyRef([]string{"", ""}).IsNone())

	single := SingleRef("c")
	assert.Equal(t, RefSingle, single.Kind)
	assert.True(t, single.Contains("c"))
	assert.False(t, single.Contains(""))

	many := ManyRef([]string{"a", "", "b"})
	assert.Equal(t, RefMany, many.Kind)
	assert.Equal(t, []string{"a", "b"}, many.IDs())
	assert.True(t, many.Contains("b"))
	assert.False(t, many.Contains("z"))
}

func TestRelationsAccessors(t *testing.T) {
	e := Element{
		ID:         "a",
		LocatedIn:  "city",
		PartOf:     "realm",
		RuledBy:    "king",
		OwnedBy:    "guild",
		MemberOf:   IDList{"guild", "order"},
		AlliedWith: IDList{"b"},
		RelatedTo:  IDList{"c", "d"},
	}

	want := map[string][]string{
		"locatedIn":  {"city"},
		"partOf":     {"realm"},
		"ruledBy":    {"king"},
		"ownedBy":    {"guild"},
		"memberOf":   {"guild", "order"},
		"alliedWith": {"b"},
		"relatedTo":  {"c", "d"},
	}

	require.Len(t, Relations, len(want))
	for _, r := range Relations {
		assert.Equal(t, want[r.Field], r.Refs(e).IDs(), r.Field)
	}
}

func TestRelationByField(t *testing.T) {
	r, ok := RelationByField("memberOf")
	require.True(t, ok)
	assert.Equal(t, Many, r.Cardinality)

	_, ok = RelationByField("enemyOf")
	assert.False(t, ok)
}
