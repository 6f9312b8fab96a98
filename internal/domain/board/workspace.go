package board

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/shared"
)

// Role is a workspace permission level. Owner is implicit: the workspace
// owner is never stored as a member row but always resolves to RoleOwner.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// roleRank orders roles for "at least role X" checks.
func roleRank(r Role) int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r satisfies a required role.
func (r Role) AtLeast(required Role) bool {
	return roleRank(r) >= roleRank(required)
}

// Valid reports whether r is an assignable member role. Owner is not
// assignable, it follows from workspace ownership.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Visibility controls who can discover a workspace.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Member is one membership entry of a workspace.
type Member struct {
	UserID  uuid.UUID `json:"user_id"`
	Role    Role      `json:"role"`
	AddedAt time.Time `json:"added_at"`
}

// Workspace groups boards and carries the single membership list that
// gates access to everything beneath it.
type Workspace struct {
	shared.BaseEntity
	Name        string     `gorm:"size:100;not null"`
	Description string     `gorm:"size:500"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Members     []Member   `gorm:"serializer:json"`
	Visibility  Visibility `gorm:"size:20;not null;default:private"`
	IsActive    bool       `gorm:"not null;default:true"`
}

// NewWorkspace creates a workspace owned by ownerID. The owner is also
// recorded as an admin member so member listings always include them.
func NewWorkspace(name, description string, ownerID uuid.UUID, visibility Visibility) (*Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "workspace name must be between 1 and 100 characters")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "workspace description must be at most 500 characters")
	}
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	if visibility != VisibilityPrivate && visibility != VisibilityPublic {
		return nil, shared.NewDomainError("INVALID_VISIBILITY", "visibility must be private or public")
	}

	return &Workspace{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Members:     []Member{{UserID: ownerID, Role: RoleAdmin, AddedAt: time.Now()}},
		Visibility:  visibility,
		IsActive:    true,
	}, nil
}

// MemberRole resolves the effective role of a user. The owner is always an
// admin regardless of the stored member rows; a missing membership entry
// yields ("", false).
func (w *Workspace) MemberRole(userID uuid.UUID) (Role, bool) {
	if userID == w.OwnerID {
		return RoleOwner, true
	}
	for _, m := range w.Members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// IsMember reports whether the user has any access to the workspace.
func (w *Workspace) IsMember(userID uuid.UUID) bool {
	_, ok := w.MemberRole(userID)
	return ok
}

// HasRole reports whether the user's effective role satisfies required.
func (w *Workspace) HasRole(userID uuid.UUID, required Role) bool {
	role, ok := w.MemberRole(userID)
	return ok && role.AtLeast(required)
}

// AddMember adds a user with the given role. Adding the owner or an
// existing member is rejected.
func (w *Workspace) AddMember(userID uuid.UUID, role Role) error {
	if !role.Valid() {
		return shared.NewDomainError("INVALID_ROLE", "role must be admin or member")
	}
	if userID == w.OwnerID {
		return shared.NewDomainError("ALREADY_MEMBER", "user is already a workspace member")
	}
	for _, m := range w.Members {
		if m.UserID == userID {
			return shared.NewDomainError("ALREADY_MEMBER", "user is already a workspace member")
		}
	}
	w.Members = append(w.Members, Member{UserID: userID, Role: role, AddedAt: time.Now()})
	w.Touch()
	return nil
}

// SetMemberRole changes an existing member's role. The owner's role
// cannot be changed.
func (w *Workspace) SetMemberRole(userID uuid.UUID, role Role) error {
	if !role.Valid() {
		return shared.NewDomainError("INVALID_ROLE", "role must be admin or member")
	}
	if userID == w.OwnerID {
		return shared.NewDomainError("OWNER_IMMUTABLE", "the workspace owner's role cannot be changed")
	}
	for i, m := range w.Members {
		if m.UserID == userID {
			w.Members[i].Role = role
			w.Touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveMember drops a membership entry. The owner cannot be removed.
func (w *Workspace) RemoveMember(userID uuid.UUID) error {
	if userID == w.OwnerID {
		return shared.NewDomainError("OWNER_IMMUTABLE", "the workspace owner cannot be removed")
	}
	for i, m := range w.Members {
		if m.UserID == userID {
			w.Members = append(w.Members[:i], w.Members[i+1:]...)
			w.Touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Update changes the mutable workspace fields. Empty name keeps the
// current one.
func (w *Workspace) Update(name, description string, visibility Visibility) error {
	if name != "" {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > 100 {
			return shared.NewDomainError("INVALID_NAME", "workspace name must be between 1 and 100 characters")
		}
		w.Name = name
	}
	if description != "" {
		if len(description) > 500 {
			return shared.NewDomainError("INVALID_DESCRIPTION", "workspace description must be at most 500 characters")
		}
		w.Description = description
	}
	if visibility != "" {
		if visibility != VisibilityPrivate && visibility != VisibilityPublic {
			return shared.NewDomainError("INVALID_VISIBILITY", "visibility must be private or public")
		}
		w.Visibility = visibility
	}
	w.Touch()
	return nil
}

// Deactivate soft-deletes the workspace. Boards beneath it stay in the
// store but are no longer reachable through workspace listings.
func (w *Workspace) Deactivate() {
	w.IsActive = false
	w.Touch()
}
