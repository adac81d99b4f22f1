package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawtrails/internal/auth"
	"pawtrails/internal/config"
	dashboarddomain "pawtrails/internal/domain/dashboard"
	locationdomain "pawtrails/internal/domain/location"
	petdomain "pawtrails/internal/domain/pet"
	reviewdomain "pawtrails/internal/domain/review"
	tagdomain "pawtrails/internal/domain/tag"
	userdomain "pawtrails/internal/domain/user"
	"pawtrails/internal/transport/httpserver/handler"
	authmw "pawtrails/internal/transport/httpserver/middleware"
	"pawtrails/pkg/logger"
)

// The stubs embed their repository interface so only the methods a route
// actually hits need an implementation.

type stubUserRepo struct {
	userdomain.Repository
	users map[string]*userdomain.User
}

func newStubUserRepo(users ...*userdomain.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*userdomain.User)}
	for _, u := range users {
		repo.users[u.UUID] = u
	}
	return repo
}

func (r *stubUserRepo) Create(ctx context.Context, u *userdomain.User) error {
	copied := *u
	r.users[u.UUID] = &copied
	return nil
}

func (r *stubUserRepo) GetByUUID(ctx context.Context, uuid string) (*userdomain.User, error) {
	u, ok := r.users[uuid]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (r *stubUserRepo) GetByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (r *stubUserRepo) List(ctx context.Context, skip, limit int) ([]userdomain.User, error) {
	result := make([]userdomain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

type stubPetRepo struct {
	petdomain.Repository
}

func (r *stubPetRepo) List(ctx context.Context, skip, limit int) ([]petdomain.Pet, error) {
	return []petdomain.Pet{}, nil
}

type stubLocationRepo struct {
	locationdomain.Repository
}

func (r *stubLocationRepo) List(ctx context.Context, skip, limit int) ([]locationdomain.Location, error) {
	return []locationdomain.Location{}, nil
}

type stubTagRepo struct {
	tagdomain.Repository
}

func (r *stubTagRepo) List(ctx context.Context, skip, limit int) ([]tagdomain.Tag, error) {
	return []tagdomain.Tag{}, nil
}

type stubReviewRepo struct {
	reviewdomain.Repository
	review   *reviewdomain.Review
	writer   string
	location string
}

func (r *stubReviewRepo) GetByUUID(ctx context.Context, uuid string) (*reviewdomain.Review, error) {
	if r.review == nil || r.review.UUID != uuid {
		return nil, reviewdomain.ErrReviewNotFound
	}
	copied := *r.review
	return &copied, nil
}

func (r *stubReviewRepo) Writer(ctx context.Context, reviewUUID string) (*userdomain.User, error) {
	if r.writer == "" {
		return nil, nil
	}
	return &userdomain.User{UUID: r.writer}, nil
}

func (r *stubReviewRepo) LocationOf(ctx context.Context, reviewUUID string) (string, error) {
	return r.location, nil
}

func (r *stubReviewRepo) Update(ctx context.Context, rev *reviewdomain.Review) error {
	copied := *rev
	r.review = &copied
	return nil
}

type routerFixture struct {
	userRepo   *stubUserRepo
	reviewRepo *stubReviewRepo
	router     http.Handler
	tokens     *auth.Issuer
}

func newRouterFixture(users ...*userdomain.User) *routerFixture {
	log := logger.New(io.Discard, slog.LevelError, "text")
	userRepo := newStubUserRepo(users...)
	reviewRepo := &stubReviewRepo{}

	userSvc := userdomain.NewService(userRepo)
	tokens := auth.NewIssuer("router-test-secret", time.Hour)
	handlers := handler.New(
		userSvc,
		petdomain.NewService(&stubPetRepo{}),
		locationdomain.NewService(&stubLocationRepo{}),
		reviewdomain.NewService(reviewRepo),
		tagdomain.NewService(&stubTagRepo{}),
		dashboarddomain.NewService(nil),
		tokens,
		log,
	)
	router := NewRouter(config.Config{}, handlers, authmw.NewAuth(tokens, userSvc, log))

	return &routerFixture{userRepo: userRepo, reviewRepo: reviewRepo, router: router, tokens: tokens}
}

func (f *routerFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func activeUser(uuid string) *userdomain.User {
	return &userdomain.User{UUID: uuid, Email: uuid + "@x.com", Username: "user-" + uuid, IsActive: true}
}

func TestPublicReadsServeWithoutToken(t *testing.T) {
	fixture := newRouterFixture(activeUser("u1"))

	paths := []string{
		"/api/v0/pet/",
		"/api/v0/location/",
		"/api/v0/tag/",
		"/api/v0/user/list",
		"/api/v0/user/u1",
		"/api/v0/health",
	}
	for _, path := range paths {
		rec := fixture.do(t, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s without token: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	fixture := newRouterFixture()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v0/user/"},
		{http.MethodGet, "/api/v0/user/dashboard"},
		{http.MethodPost, "/api/v0/pet/"},
		{http.MethodPost, "/api/v0/location/search"},
		{http.MethodPost, "/api/v0/tag/"},
	}
	for _, tc := range cases {
		rec := fixture.do(t, tc.method, tc.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRegisterReturnsOK(t *testing.T) {
	fixture := newRouterFixture()

	body := `{"email":"carol@x.com","username":"carol","password":"pw123456"}`
	rec := fixture.do(t, http.MethodPost, "/api/v0/register", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}

	var registered struct {
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if registered.UUID == "" {
		t.Fatalf("register: expected uuid in response")
	}
}

func TestReviewRouteChecksLocationPath(t *testing.T) {
	fixture := newRouterFixture(activeUser("u1"))
	fixture.reviewRepo.review = &reviewdomain.Review{UUID: "r1", Comment: "fine", Grade: 4}
	fixture.reviewRepo.writer = "u1"
	fixture.reviewRepo.location = "l1"

	token, err := fixture.tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec := fixture.do(t, http.MethodPatch, "/api/v0/location/l2/review/r1", token, `{"grade":5}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("review under wrong location: expected 404, got %d", rec.Code)
	}

	rec = fixture.do(t, http.MethodPatch, "/api/v0/location/l1/review/r1", token, `{"grade":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("review under its location: expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = fixture.do(t, http.MethodDelete, "/api/v0/location/l2/review/r1", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete under wrong location: expected 404, got %d", rec.Code)
	}
}
