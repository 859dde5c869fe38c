package models

// Cardinality describes how many ids a reference field may hold.
type Cardinality int

const (
	One Cardinality = iota
	Many
)

// RefKind tells whether a reference field is unset, holds one id, or holds a
// collection of ids.
type RefKind int

const (
	RefNone RefKind = iota
	RefSingle
	RefMany
)

// RefValue is the resolved value of one reference field on one element.
type RefValue struct {
	Kind RefKind
	ids  []string
}

// NoRef is the value of an absent or empty reference field.
var NoRef = RefValue{Kind: RefNone}

// SingleRef wraps one id. An empty id resolves to NoRef.
func SingleRef(id string) RefValue {
	if id == "" {
		return NoRef
	}
	return RefValue{Kind: RefSingle, ids: []string{id}}
}

// ManyRef wraps a collection of ids, dropping empty entries. A collection with
// no usable ids resolves to NoRef.
func ManyRef(ids []string) RefValue {
	var kept []string
	for _, id := range ids {
		if id != "" {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return NoRef
	}
	return RefValue{Kind: RefMany, ids: kept}
}

// IsNone reports whether the field contributes no references.
func (v RefValue) IsNone() bool {
	return v.Kind == RefNone
}

// IDs returns the referenced ids in field order.
func (v RefValue) IDs() []string {
	return v.ids
}

// Contains reports whether id is among the referenced ids.
func (v RefValue) Contains(id string) bool {
	if id == "" {
		return false
	}
	for _, ref := range v.ids {
		if ref == id {
			return true
		}
	}
	return false
}

// Relation is one kind of reference an element can hold.
type Relation struct {
	Field       string // attribute name in world files
	Label       string // grouping label for reverse links
	Cardinality Cardinality
	refs        func(Element) RefValue
}

// Refs resolves this relation on e.
func (r Relation) Refs(e Element) RefValue {
	return r.refs(e)
}

// Relations is the closed set of reference kinds, in the order reverse links
// are reported for a single referrer.
var Relations = []Relation{
	{Field: "locatedIn", Label: "locatedIn", Cardinality: One, refs: func(e Element) RefValue { return SingleRef(e.LocatedIn) }},
	{Field: "partOf", Label: "partOf", Cardinality: One, refs: func(e Element) RefValue { return SingleRef(e.PartOf) }},
	{Field: "ruledBy", Label: "ruledBy", Cardinality: One, refs: func(e Element) RefValue { return SingleRef(e.RuledBy) }},
	{Field: "ownedBy", Label: "ownedBy", Cardinality: One, refs: func(e Element) RefValue { return SingleRef(e.OwnedBy) }},
	{Field: "memberOf", Label: "memberOf", Cardinality: Many, refs: func(e Element) RefValue { return ManyRef(e.MemberOf) }},
	{Field: "alliedWith", Label: "alliedWith", Cardinality: Many, refs: func(e Element) RefValue { return ManyRef(e.AlliedWith) }},
	{Field: "relatedTo", Label: "relatedTo", Cardinality: Many, refs: func(e Element) RefValue { return ManyRef(e.RelatedTo) }},
}

// RelationByField looks up a relation by its attribute name.
func RelationByField(field string) (Relation, bool) {
	for _, r := range Relations {
		if r.Field == field {
			return r, true
		}
	}
	return Relation{}, false
}
