package models

import "github.com/sharetab/sharetab/internal/identity"

// Group represents a set of parties who share expenses.
// A group always has at least one member; when the last member leaves,
// the group is deleted rather than kept empty.
type Group struct {
	// ID is the group's numeric identifier, assigned from the group counter.
	ID uint64

	// Name is the display name, non-blank and at most 64 characters.
	Name string

	// Creator is the party that created the group. The creator is always a
	// member at creation time but may leave later like anyone else.
	Creator identity.PartyID

	// Members is the ordered member set, creator first.
	Members []identity.PartyID

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether p is currently a member of the group.
func (g *Group) HasMember(p identity.PartyID) bool {
	for _, m := range g.Members {
		if m == p {
			return true
		}
	}
	return false
}
