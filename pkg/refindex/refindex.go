// Package refindex computes "what links here" for world elements: every
// element that references a target, grouped by relation label.
//
// Both operations are pure. They never mutate their inputs, never fail, and
// run in time proportional to len(elements) times the number of relations.
package refindex

import "github.com/evanschultz/float-worldbook/pkg/models"

// ReverseLink records that Source references the queried element under Label.
type ReverseLink struct {
	Source models.Element
	Label  string
}

// Group is every distinct referrer sharing one relation label.
type Group struct {
	Label    string
	Elements []models.Element
}

// Groups is an ordered mapping from label to Group. Labels appear in the
// order they were first seen.
type Groups []Group

// ComputeReverseLinks scans elements for references to targetID.
//
// An element referencing the target through several relations yields one link
// per relation. Elements whose id equals targetID are skipped. A targetID that
// matches no element is not an error; the scan simply finds nothing.
func ComputeReverseLinks(targetID string, elements []models.Element) []ReverseLink {
	var links []ReverseLink
	for _, e := range elements {
		if e.ID == targetID {
			continue
		}
		for _, rel := range models.Relations {
			if rel.Refs(e).Contains(targetID) {
				links = append(links, ReverseLink{Source: e, Label: rel.Label})
			}
		}
	}
	return links
}

// GroupReverseLinks partitions links by label. Within a group, elements keep
// the order of their first link; a repeated (label, element) pair is kept once.
func GroupReverseLinks(links []ReverseLink) Groups {
	groups := Groups{}
	index := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, link := range links {
		i, ok := index[link.Label]
		if !ok {
			i = len(groups)
			index[link.Label] = i
			groups = append(groups, Group{Label: link.Label})
			seen[link.Label] = make(map[string]bool)
		}
		if seen[link.Label][link.Source.ID] {
			continue
		}
		seen[link.Label][link.Source.ID] = true
		groups[i].Elements = append(groups[i].Elements, link.Source)
	}

	return groups
}

// Len returns the number of labels.
func (g Groups) Len() int {
	return len(g)
}

// Empty reports whether there is nothing to show.
func (g Groups) Empty() bool {
	return len(g) == 0
}

// Labels returns the labels in display order.
func (g Groups) Labels() []string {
	labels := make([]string, len(g))
	for i, group := range g {
		labels[i] = group.Label
	}
	return labels
}

// Get returns the group for label.
func (g Groups) Get(label string) (Group, bool) {
	for _, group := range g {
		if group.Label == label {
			return group, true
		}
	}
	return Group{}, false
}

// Referrers returns each distinct referrer once, in first-seen order.
func (g Groups) Referrers() []models.Element {
	var out []models.Element
	seen := make(map[string]bool)
	for _, group := range g {
		for _, e := range group.Elements {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			out = append(out, e)
		}
	}
	return out
}
