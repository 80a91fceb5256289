package models

import "fmt"

// Owner identifies whose balance or holding a record affects.
type Owner string

const (
	OwnerA      Owner = "A"
	OwnerB      Owner = "B"
	OwnerShared Owner = "Shared"
)

// IsUser reports whether o is one of the two users (not Shared).
func (o Owner) IsUser() bool {
	return o == OwnerA || o == OwnerB
}

// ValidAccountOwner reports whether o may own an account.
func (o Owner) ValidAccountOwner() bool {
	return o.IsUser() || o == OwnerShared
}

// ParseOwner parses an account owner ("A", "B" or "Shared").
func ParseOwner(s string) (Owner, error) {
	o := Owner(s)
	if !o.ValidAccountOwner() {
		return "", fmt.Errorf("invalid owner %q: must be A, B or Shared", s)
	}
	return o, nil
}

// ParseUser parses a user owner ("A" or "B").
func ParseUser(s string) (Owner, error) {
	o := Owner(s)
	if !o.IsUser() {
		return "", fmt.Errorf("invalid user %q: must be A or B", s)
	}
	return o, nil
}

// ViewMode selects whose records a query looks at.
// It replaces the UI-wide "current user" toggle and is passed into every query.
type ViewMode string

const (
	ViewA        ViewMode = "A"
	ViewB        ViewMode = "B"
	ViewCombined ViewMode = "Combined"
)

// ParseViewMode parses a view mode; the empty string means Combined.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "", ViewCombined:
		return ViewCombined, nil
	case ViewA, ViewB:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("invalid view %q: must be A, B or Combined", s)
}

// ViewFor returns the single-user view of a user owner.
func ViewFor(o Owner) ViewMode {
	if o.IsUser() {
		return ViewMode(o)
	}
	return ViewCombined
}

// Includes reports whether a record owned by o is visible in this view.
// Shared records are visible in every view.
func (v ViewMode) Includes(o Owner) bool {
	return v == ViewCombined || o == OwnerShared || Owner(v) == o
}
