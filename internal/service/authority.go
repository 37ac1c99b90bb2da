package service

import (
	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/errors"
)

// ActionKind enumerates the mutating operations the authority gates.
type ActionKind int

const (
	ActionGrantMod ActionKind = iota
	ActionRevokeMod
	ActionDeleteTopic
	ActionDeleteMessage
	ActionDeleteUser
	ActionEditProfile
)

// Action describes what the actor wants to do. TargetUser is set for the
// user-scoped kinds (DeleteUser, EditProfile, Grant/RevokeMod).
type Action struct {
	Kind       ActionKind
	TargetUser *domain.User
}

// Authority decides whether an authenticated actor may perform an action.
// Rules are evaluated in order, first match wins. Unauthenticated callers
// never reach this point; the auth middleware rejects them earlier.
type Authority struct{}

func NewAuthority() *Authority {
	return &Authority{}
}

func (a *Authority) Can(actor *domain.User, act Action) error {
	switch act.Kind {
	case ActionGrantMod, ActionRevokeMod:
		if !actor.Super() {
			return errors.InsufficientPrivilege
		}
		return nil

	case ActionDeleteTopic, ActionDeleteMessage:
		if !actor.Moderator {
			return errors.InsufficientPrivilege
		}
		return nil

	case ActionDeleteUser:
		// A moderator account is never deletable while the flag is set,
		// regardless of who asks; the super-user is never deletable at all.
		if act.TargetUser.Moderator || act.TargetUser.Super() {
			return errors.ProtectedAccount
		}
		if actor.Moderator || actor.Id == act.TargetUser.Id {
			return nil
		}
		return errors.InsufficientPrivilege

	case ActionEditProfile:
		if actor.Id != act.TargetUser.Id {
			return errors.InsufficientPrivilege
		}
		return nil
	}
	return errors.InsufficientPrivilege
}
