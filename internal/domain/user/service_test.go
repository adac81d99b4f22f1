package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

type followEdge struct {
	follower string
	followee string
}

type fakeUserRepo struct {
	users   map[string]*User
	follows map[followEdge]time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]*User),
		follows: make(map[followEdge]time.Time),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	copied := *u
	r.users[u.UUID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByUUID(ctx context.Context, uuid string) (*User, error) {
	u, ok := r.users[uuid]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, skip, limit int) ([]User, error) {
	result := make([]User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.UUID]; !ok {
		return ErrUserNotFound
	}
	copied := *u
	r.users[u.UUID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, uuid string) error {
	delete(r.users, uuid)
	return nil
}

func (r *fakeUserRepo) CreateFollow(ctx context.Context, followerUUID, followeeUUID string, at time.Time) (bool, error) {
	edge := followEdge{follower: followerUUID, followee: followeeUUID}
	if _, ok := r.follows[edge]; ok {
		return false, nil
	}
	r.follows[edge] = at
	return true, nil
}

func (r *fakeUserRepo) DeleteFollow(ctx context.Context, followerUUID, followeeUUID string) (bool, error) {
	edge := followEdge{follower: followerUUID, followee: followeeUUID}
	if _, ok := r.follows[edge]; !ok {
		return false, nil
	}
	delete(r.follows, edge)
	return true, nil
}

func (r *fakeUserRepo) Followers(ctx context.Context, uuid string) ([]User, error) {
	result := make([]User, 0)
	for edge := range r.follows {
		if edge.followee == uuid {
			if u, ok := r.users[edge.follower]; ok {
				result = append(result, *u)
			}
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Following(ctx context.Context, uuid string) ([]User, error) {
	result := make([]User, 0)
	for edge := range r.follows {
		if edge.follower == uuid {
			if u, ok := r.users[edge.followee]; ok {
				result = append(result, *u)
			}
		}
	}
	return result, nil
}

func TestRegisterSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "alice@x.com", "alice", "pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.UUID == "" || len(u.UUID) != 32 {
		t.Fatalf("expected 32-char uuid, got %q", u.UUID)
	}
	if !u.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if u.PasswordHash == "pw123456" {
		t.Fatalf("expected hashed password, got plaintext")
	}
	if _, ok := repo.users[u.UUID]; !ok {
		t.Fatalf("expected user persisted")
	}
}

func TestRegisterValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	cases := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"malformed email", "not-an-email", "alice", "pw123456"},
		{"short username", "alice@x.com", "al", "pw123456"},
		{"short password", "alice@x.com", "alice", "pw"},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.email, tc.username, tc.password); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestRegisterConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), "alice@x.com", "alice", "pw123456"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.Register(context.Background(), "alice@x.com", "other", "pw123456"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "other@x.com", "alice", "pw123456"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	registered, err := svc.Register(context.Background(), "alice@x.com", "alice", "pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	u, err := svc.Authenticate(context.Background(), "alice@x.com", "pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.UUID != registered.UUID {
		t.Fatalf("expected uuid %s, got %s", registered.UUID, u.UUID)
	}

	if _, err := svc.Authenticate(context.Background(), "alice@x.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@x.com", "pw123456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdatePasswordRequiresOldPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "alice@x.com", "alice", "pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	newPass := "new-pass-123"
	wrong := "not-the-old-one"
	if _, err := svc.Update(context.Background(), u.UUID, UpdateInput{Password: &newPass, OldPassword: &wrong}); !errors.Is(err, ErrOldPasswordMismatch) {
		t.Fatalf("expected ErrOldPasswordMismatch, got %v", err)
	}

	old := "pw123456"
	if _, err := svc.Update(context.Background(), u.UUID, UpdateInput{Password: &newPass, OldPassword: &old}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "alice@x.com", newPass); err != nil {
		t.Fatalf("expected new password accepted, got %v", err)
	}
}

func TestUpdateHomeRequiresBothCoordinates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "alice@x.com", "alice", "pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lon := 24.1
	if _, err := svc.Update(context.Background(), u.UUID, UpdateInput{HomeLongitude: &lon}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	lat := 56.9
	updated, err := svc.Update(context.Background(), u.UUID, UpdateInput{HomeLongitude: &lon, HomeLatitude: &lat})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Home == nil || updated.Home.Longitude != lon || updated.Home.Latitude != lat {
		t.Fatalf("expected home point set, got %+v", updated.Home)
	}
}

func TestFollowSelfIsRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), "alice@x.com", "alice", "pw123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	followed, err := svc.Follow(context.Background(), u.UUID, u.UUID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if followed {
		t.Fatalf("expected self-follow to report false")
	}
	if len(repo.follows) != 0 {
		t.Fatalf("expected no edge persisted")
	}
}

func TestFollowIsIdempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	a, _ := svc.Register(context.Background(), "a@x.com", "alice", "pw123456")
	b, _ := svc.Register(context.Background(), "b@x.com", "bobby", "pw123456")

	followed, err := svc.Follow(context.Background(), a.UUID, b.UUID)
	if err != nil || !followed {
		t.Fatalf("expected first follow to succeed, got %v %v", followed, err)
	}
	followed, err = svc.Follow(context.Background(), a.UUID, b.UUID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if followed {
		t.Fatalf("expected duplicate follow to report false")
	}
}

func TestUnfollowBeforeFollow(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	a, _ := svc.Register(context.Background(), "a@x.com", "alice", "pw123456")
	b, _ := svc.Register(context.Background(), "b@x.com", "bobby", "pw123456")

	unfollowed, err := svc.Unfollow(context.Background(), a.UUID, b.UUID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if unfollowed {
		t.Fatalf("expected unfollow without follow to report false")
	}
}

func TestFollowUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	a, _ := svc.Register(context.Background(), "a@x.com", "alice", "pw123456")

	if _, err := svc.Follow(context.Background(), a.UUID, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
