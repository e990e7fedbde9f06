package target

import (
	"fmt"

	"github.com/google/uuid"
)

// ActorKind distinguishes the subject being measured by a target
type ActorKind string

const (
	ActorKindSalesperson ActorKind = "SALESPERSON"
	ActorKindTeam        ActorKind = "TEAM"
)

// IsValid checks if the kind is a known ActorKind
func (k ActorKind) IsValid() bool {
	switch k {
	case ActorKindSalesperson, ActorKindTeam:
		return true
	}
	return false
}

// String returns the string representation of ActorKind
func (k ActorKind) String() string {
	return string(k)
}

// ParseActorKind converts a string to an ActorKind
func ParseActorKind(s string) (ActorKind, error) {
	k := ActorKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown actor kind: %q", s)
	}
	return k, nil
}

// ActorRef is an opaque reference to a salesperson or a sales team.
// The engine never resolves it; directory lookups are an external concern.
type ActorRef struct {
	Kind ActorKind `gorm:"type:varchar(20)" json:"kind"`
	ID   uuid.UUID `gorm:"type:uuid" json:"id"`
}

// NewSalespersonRef creates an actor reference to a salesperson
func NewSalespersonRef(id uuid.UUID) ActorRef {
	return ActorRef{Kind: ActorKindSalesperson, ID: id}
}

// NewTeamRef creates an actor reference to a sales team
func NewTeamRef(id uuid.UUID) ActorRef {
	return ActorRef{Kind: ActorKindTeam, ID: id}
}

// IsZero returns true if the reference is unset
func (a ActorRef) IsZero() bool {
	return a.Kind == "" || a.ID == uuid.Nil
}

// Equals returns true if both references point at the same actor
func (a ActorRef) Equals(other ActorRef) bool {
	return a.Kind == other.Kind && a.ID == other.ID
}

// String returns a human-readable representation
func (a ActorRef) String() string {
	return fmt.Sprintf("%s:%s", a.Kind, a.ID)
}
