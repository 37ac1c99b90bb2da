package service

import (
	"github.com/askboard-dev/askboard/internal/assets"
	"github.com/askboard-dev/askboard/internal/domain"
)

type UserService interface {
	Get(id domain.UserId) (domain.User, error)
	Delete(actor *domain.User, targetId domain.UserId) error
	SetModerator(actor *domain.User, targetId domain.UserId, moderator bool) error
	UpdateProfile(actor *domain.User, targetId domain.UserId, about string) error
	SetProfileImage(actor *domain.User, targetId domain.UserId, image []byte, imageExt string) error
}

type User struct {
	storage   UserStorage
	authority *Authority
	assets    *assets.Store
}

type UserStorage interface {
	User(id domain.UserId) (domain.User, error)
	DeleteUser(id domain.UserId) (profileImage, locationImage domain.BlobKey, err error)
	SetModerator(id domain.UserId, moderator bool) error
	UpdateProfile(id domain.UserId, about string) error
	SetProfileImage(id domain.UserId, key domain.BlobKey) error
}

func NewUser(storage UserStorage, authority *Authority, assets *assets.Store) *User {
	return &User{storage, authority, assets}
}

func (u *User) Get(id domain.UserId) (domain.User, error) {
	return u.storage.User(id)
}

// Delete removes the account and releases its image blobs. A moderator must
// be demoted first; topics and messages the user wrote stay behind.
func (u *User) Delete(actor *domain.User, targetId domain.UserId) error {
	target, err := u.storage.User(targetId)
	if err != nil {
		return err
	}
	if err := u.authority.Can(actor, Action{Kind: ActionDeleteUser, TargetUser: &target}); err != nil {
		return err
	}

	profileImage, locationImage, err := u.storage.DeleteUser(targetId)
	if err != nil {
		return err
	}
	u.assets.Release(profileImage)
	u.assets.Release(locationImage)
	return nil
}

// SetModerator grants or revokes the moderator flag. Super-user only.
func (u *User) SetModerator(actor *domain.User, targetId domain.UserId, moderator bool) error {
	kind := ActionGrantMod
	if !moderator {
		kind = ActionRevokeMod
	}
	target, err := u.storage.User(targetId)
	if err != nil {
		return err
	}
	if err := u.authority.Can(actor, Action{Kind: kind, TargetUser: &target}); err != nil {
		return err
	}
	return u.storage.SetModerator(targetId, moderator)
}

func (u *User) UpdateProfile(actor *domain.User, targetId domain.UserId, about string) error {
	target, err := u.storage.User(targetId)
	if err != nil {
		return err
	}
	if err := u.authority.Can(actor, Action{Kind: ActionEditProfile, TargetUser: &target}); err != nil {
		return err
	}
	return u.storage.UpdateProfile(targetId, about)
}

// SetProfileImage replaces the profile image through the asset store: blob
// written first, key committed, old blob removed last.
func (u *User) SetProfileImage(actor *domain.User, targetId domain.UserId, image []byte, imageExt string) error {
	target, err := u.storage.User(targetId)
	if err != nil {
		return err
	}
	if err := u.authority.Can(actor, Action{Kind: ActionEditProfile, TargetUser: &target}); err != nil {
		return err
	}

	_, err = u.assets.Replace(target.ProfileImage, image, imageExt, func(newKey string) error {
		return u.storage.SetProfileImage(targetId, newKey)
	})
	return err
}
