package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/askboard-dev/askboard/internal/domain"
	internal_errors "github.com/askboard-dev/askboard/internal/errors"
)

const userColumns = `id, username, COALESCE(email, ''), pass_hash, about, created, profile_image, location, location_image, moderator`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.Id, &u.Username, &u.Email, &u.PassHash, &u.About,
		&u.CreatedAt, &u.ProfileImage, &u.Location, &u.LocationImage, &u.Moderator,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

// SaveUser inserts a new user and returns its id. Duplicate username or
// email surfaces as a 409.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	var email any
	if user.Email != "" {
		email = user.Email
	}

	var id domain.UserId
	err := s.db.QueryRow(`
	INSERT INTO users (username, email, pass_hash, about, profile_image)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`,
		user.Username, email, user.PassHash, user.About, user.ProfileImage,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "Username or email already taken", StatusCode: 409}
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) User(id domain.UserId) (domain.User, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Storage) UserByUsername(username string) (domain.User, error) {
	return scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// UpdateProfile rewrites the self-editable text fields.
func (s *Storage) UpdateProfile(id domain.UserId, about string) error {
	return s.execOnUser(`UPDATE users SET about = $2 WHERE id = $1`, id, about)
}

// SetProfileImage commits a new profile image key.
func (s *Storage) SetProfileImage(id domain.UserId, key domain.BlobKey) error {
	return s.execOnUser(`UPDATE users SET profile_image = $2 WHERE id = $1`, id, key)
}

// SetLocation commits the display name and map-image key together.
func (s *Storage) SetLocation(id domain.UserId, name string, imageKey domain.BlobKey) error {
	return s.execOnUser(`UPDATE users SET location = $2, location_image = $3 WHERE id = $1`, id, name, imageKey)
}

// SetLocationName updates the display name, leaving the map image as is.
func (s *Storage) SetLocationName(id domain.UserId, name string) error {
	return s.execOnUser(`UPDATE users SET location = $2 WHERE id = $1`, id, name)
}

// SetModerator flips the moderator flag.
func (s *Storage) SetModerator(id domain.UserId, moderator bool) error {
	return s.execOnUser(`UPDATE users SET moderator = $2 WHERE id = $1`, id, moderator)
}

// DeleteUser removes the row and returns the image keys it referenced so
// the caller can release the blobs. Topics and messages the user created
// stay behind with an orphaned creator reference.
func (s *Storage) DeleteUser(id domain.UserId) (profileImage, locationImage domain.BlobKey, err error) {
	err = s.withTx(context.Background(), func(tx *sql.Tx) error {
		row := tx.QueryRow(`DELETE FROM users WHERE id = $1 RETURNING profile_image, location_image`, id)
		if err := row.Scan(&profileImage, &locationImage); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("User")
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	return profileImage, locationImage, err
}

func (s *Storage) execOnUser(query string, args ...any) error {
	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return internal_errors.NotFound("User")
	}
	return nil
}
