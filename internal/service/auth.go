package service

import (
	"net/http"

	"github.com/askboard-dev/askboard/internal/domain"
	"github.com/askboard-dev/askboard/internal/errors"
	"github.com/askboard-dev/askboard/internal/logger"
	"github.com/askboard-dev/askboard/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(creds domain.Credentials, email string) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     TokenIssuer
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByUsername(username string) (domain.User, error)
}

type TokenIssuer interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt TokenIssuer) *Auth {
	return &Auth{storage, jwt}
}

// Register creates an account. Username/email uniqueness is enforced by the
// storage layer's unique constraints.
func (a *Auth) Register(creds domain.Credentials, email string) (domain.UserId, error) {
	if err := utils.ValidateUsername(creds.Username); err != nil {
		return 0, err
	}
	if len(creds.Password) < 8 {
		return 0, &errors.ErrorWithStatusCode{Message: "Password must be at least 8 characters", StatusCode: http.StatusBadRequest}
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}

	return a.storage.SaveUser(domain.User{
		Username: creds.Username,
		Email:    email,
		PassHash: string(passHash),
	})
}

// Login verifies the password and returns a signed session token.
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	user, err := a.storage.UserByUsername(creds.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", badCredentials()
		}
		return "", err
	}

	if !VerifyPassword(&user, creds.Password) {
		return "", badCredentials()
	}

	return a.jwt.NewToken(user)
}

// VerifyPassword compares plaintext against the stored bcrypt hash.
func VerifyPassword(user *domain.User, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(plaintext)) == nil
}

func badCredentials() error {
	// same answer for unknown user and wrong password
	return &errors.ErrorWithStatusCode{Message: "Wrong username or password", StatusCode: http.StatusUnauthorized}
}
