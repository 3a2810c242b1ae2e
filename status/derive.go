// Package status derives display status and UI tokens from a meeting and
// the viewer's relationship to it. Every list and detail surface goes
// through Derive so badge semantics stay identical across screens.
package status

import (
	"sort"

	"actionmate/models"
)

type Tokens struct {
	Left            []Token       `json:"left"`
	Right           []Token       `json:"right"`
	Meta            []Token       `json:"meta"`
	Disabled        bool          `json:"disabled"`
	EffectiveStatus models.Status `json:"effectiveStatus"`
}

// Effective reconciles the stored status with live capacity: an OPEN or
// STARTED meeting whose seats are all taken displays as FULL.
func Effective(m *models.Meeting) models.Status {
	switch m.Status {
	case models.StatusOpen, models.StatusStarted:
		if m.Capacity.Remaining() == 0 {
			return models.StatusFull
		}
	}
	return m.Status
}

// Derive computes the token groups for one meeting as seen with my.
func Derive(m *models.Meeting, my models.MyState) Tokens {
	effective := Effective(m)
	closed := effective.Closed()
	membership := my.MembershipStatus

	joinBlocked := !closed &&
		!my.CanJoin &&
		!hasRelationship(membership) &&
		effective != models.StatusStarted

	out := Tokens{
		Left:            []Token{},
		Right:           []Token{},
		Meta:            []Token{joinModeToken(m.JoinMode)},
		Disabled:        closed || joinBlocked || membership == models.MembershipRejected,
		EffectiveStatus: effective,
	}

	if key, ok := leftKey(membership, joinBlocked); ok {
		out.Left = append(out.Left, NewToken(key))
	}
	if key, ok := rightKey(effective); ok {
		out.Right = append(out.Right, NewToken(key))
	}

	sortTokens(out.Left)
	sortTokens(out.Right)
	sortTokens(out.Meta)
	return out
}

func hasRelationship(s models.MembershipStatus) bool {
	switch s {
	case models.MembershipHost, models.MembershipMember, models.MembershipPending, models.MembershipRejected:
		return true
	}
	return false
}

// leftKey picks the single viewer token by priority. A viewer who can freely
// join gets no token at all.
func leftKey(s models.MembershipStatus, joinBlocked bool) (Key, bool) {
	switch s {
	case models.MembershipHost:
		return KeyHost, true
	case models.MembershipMember:
		return KeyMember, true
	case models.MembershipPending:
		return KeyPending, true
	case models.MembershipRejected:
		return KeyRejected, true
	case models.MembershipNone, models.MembershipCanceled:
	}
	if joinBlocked {
		return KeyJoinBlocked, true
	}
	return "", false
}

func rightKey(s models.Status) (Key, bool) {
	switch s {
	case models.StatusFull:
		return KeyFull, true
	case models.StatusCanceled:
		return KeyCanceled, true
	case models.StatusEnded:
		return KeyEnded, true
	case models.StatusStarted:
		return KeyStarted, true
	case models.StatusOpen:
	}
	return "", false
}

func joinModeToken(mode models.JoinMode) Token {
	if mode == models.JoinModeApproval {
		return NewToken(KeyApproval)
	}
	return NewToken(KeyInstant)
}

func sortTokens(tokens []Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Priority < tokens[j].Priority
	})
}
