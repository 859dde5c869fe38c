package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// World is the on-disk container for a set of elements.
type World struct {
	Name     string    `json:"name" yaml:"name"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// Element is one object in the world: a character, a place, a faction, an item.
type Element struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Content  string   `json:"content,omitempty" yaml:"content,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Single-valued references
	LocatedIn string `json:"locatedIn,omitempty" yaml:"locatedIn,omitempty"`
	PartOf    string `json:"partOf,omitempty" yaml:"partOf,omitempty"`
	RuledBy   string `json:"ruledBy,omitempty" yaml:"ruledBy,omitempty"`
	OwnedBy   string `json:"ownedBy,omitempty" yaml:"ownedBy,omitempty"`

	// Multi-valued references
	MemberOf   IDList `json:"memberOf,omitempty" yaml:"memberOf,omitempty"`
	AlliedWith IDList `json:"alliedWith,omitempty" yaml:"alliedWith,omitempty"`
	RelatedTo  IDList `json:"relatedTo,omitempty" yaml:"relatedTo,omitempty"`
}

// IDList is a list of element ids. It decodes from either a single id or a
// sequence of ids.
type IDList []string

func (l *IDList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = IDList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("id list: expected string or array of strings: %w", err)
	}
	*l = many
	return nil
}

func (l *IDList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || value.Value == "" {
			*l = nil
			return nil
		}
		*l = IDList{value.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return fmt.Errorf("id list at line %d: %w", value.Line, err)
		}
		*l = many
		return nil
	default:
		return fmt.Errorf("id list at line %d: expected scalar or sequence", value.Line)
	}
}
