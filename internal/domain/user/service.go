package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Register(ctx context.Context, email, username, password string) (*User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if len(username) < minUsernameLength {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLength)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := &User{
		UUID:         newUUID(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate looks the user up by email and verifies the password.
// A mismatch yields ErrInvalidCredentials, never a datastore error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (*User, error) {
	return s.repo.GetByUUID(ctx, uuid)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]User, error) {
	if limit <= 0 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}
	return s.repo.List(ctx, skip, limit)
}

type UpdateInput struct {
	Email         *string
	Username      *string
	Password      *string
	OldPassword   *string
	FullName      *string
	HomeLongitude *float64
	HomeLatitude  *float64
}

func (s *Service) Update(ctx context.Context, uuid string, in UpdateInput) (*User, error) {
	u, err := s.repo.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: malformed email", ErrInvalidInput)
		}
		if email != u.Email {
			if taken, err := s.emailTaken(ctx, email); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrEmailTaken
			}
			u.Email = email
		}
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if len(username) < minUsernameLength {
			return nil, fmt.Errorf("%w: username must be at least %d characters", ErrInvalidInput, minUsernameLength)
		}
		if username != u.Username {
			if taken, err := s.usernameTaken(ctx, username); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrUsernameTaken
			}
			u.Username = username
		}
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
		}
		if in.OldPassword == nil {
			return nil, ErrOldPasswordMismatch
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(*in.OldPassword)); err != nil {
			return nil, ErrOldPasswordMismatch
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}

	if in.HomeLongitude != nil || in.HomeLatitude != nil {
		if in.HomeLongitude == nil || in.HomeLatitude == nil {
			return nil, fmt.Errorf("%w: home requires both longitude and latitude", ErrInvalidInput)
		}
		u.Home = &Point{Longitude: *in.HomeLongitude, Latitude: *in.HomeLatitude}
	}

	u.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, uuid string) error {
	return s.repo.Delete(ctx, uuid)
}

// Follow creates a FOLLOWS edge from follower to followee. It returns false
// without touching the store on a self-follow or an already-existing edge.
func (s *Service) Follow(ctx context.Context, followerUUID, followeeUUID string) (bool, error) {
	if followerUUID == followeeUUID {
		return false, nil
	}
	if _, err := s.repo.GetByUUID(ctx, followeeUUID); err != nil {
		return false, err
	}
	return s.repo.CreateFollow(ctx, followerUUID, followeeUUID, s.now().UTC())
}

func (s *Service) Unfollow(ctx context.Context, followerUUID, followeeUUID string) (bool, error) {
	if followerUUID == followeeUUID {
		return false, nil
	}
	if _, err := s.repo.GetByUUID(ctx, followeeUUID); err != nil {
		return false, err
	}
	return s.repo.DeleteFollow(ctx, followerUUID, followeeUUID)
}

func (s *Service) Followers(ctx context.Context, uuid string) ([]User, error) {
	return s.repo.Followers(ctx, uuid)
}

func (s *Service) Following(ctx context.Context, uuid string) ([]User, error) {
	return s.repo.Following(ctx, uuid)
}

func (s *Service) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) usernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func newUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
