// Package session owns the table roster and builds game engines bound to the
// shared ledger.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("player name is required")
	ErrDuplicateName  = errors.New("player name already taken")
	ErrUnknownMember  = errors.New("unknown player")
	ErrNeedTwoPlayers = errors.New("need at least 2 players")
	ErrNoDealer       = errors.New("no dealer selected")
)

// Member is a person at the table.
type Member struct {
	ID   string
	Name string
}

// Roster is the ordered list of members plus the dealer choice.
type Roster struct {
	members []Member
	dealer  string
}

// NewRoster seats names in order and makes dealer the dealer. An empty dealer
// leaves the choice open.
func NewRoster(names []string, dealer string) (*Roster, error) {
	r := &Roster{}
	for _, n := range names {
		if _, err := r.Add(n); err != nil {
			return nil, err
		}
	}
	if dealer != "" {
		m, ok := r.ByName(dealer)
		if !ok {
			return nil, fmt.Errorf("%w: dealer %q", ErrUnknownMember, dealer)
		}
		if err := r.SetDealer(m.ID); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add seats a new member. Names are unique ignoring case.
func (r *Roster) Add(name string) (Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Member{}, ErrEmptyName
	}
	if _, ok := r.ByName(name); ok {
		return Member{}, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	m := Member{ID: MemberID(name), Name: name}
	r.members = append(r.members, m)
	return m, nil
}

// namespace scopes member ids to chipless.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/lox/chipless/member"))

// MemberID derives the stable id for a name so the persisted ledger follows
// the same person across sessions. Case is ignored.
func MemberID(name string) string {
	return uuid.NewSHA1(namespace, []byte(strings.ToLower(strings.TrimSpace(name)))).String()
}

// SetDealer designates the dealer by id.
func (r *Roster) SetDealer(id string) error {
	if _, ok := r.ByID(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMember, id)
	}
	r.dealer = id
	return nil
}

// Dealer returns the dealer, if chosen.
func (r *Roster) Dealer() (Member, bool) {
	if r.dealer == "" {
		return Member{}, false
	}
	return r.ByID(r.dealer)
}

// Members returns every member in seat order.
func (r *Roster) Members() []Member {
	return append([]Member(nil), r.members...)
}

// ByName finds a member case-insensitively.
func (r *Roster) ByName(name string) (Member, bool) {
	name = strings.TrimSpace(name)
	for _, m := range r.members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Member{}, false
}

// ByID finds a member by id.
func (r *Roster) ByID(id string) (Member, bool) {
	for _, m := range r.members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Ready checks that a game can start: two or more members and a dealer.
func (r *Roster) Ready() error {
	if len(r.members) < 2 {
		return ErrNeedTwoPlayers
	}
	if r.dealer == "" {
		return ErrNoDealer
	}
	return nil
}
