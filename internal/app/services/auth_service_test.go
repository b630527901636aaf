package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/auth"
	"github.com/mkowalczyk/campushub/internal/pkg/ratelimit"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User
	nextID  int64

	lastLoginStamped []int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
		nextID:  1,
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	f.lastLoginStamped = append(f.lastLoginStamped, userID)
	return nil
}

type storedToken struct {
	userID     int64
	expiryDate time.Time
	isRevoked  bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiryDate: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return stored.userID, stored.expiryDate, stored.isRevoked, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.isRevoked = true
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	for _, stored := range f.tokens {
		if stored.userID == userID {
			stored.isRevoked = true
		}
	}
	return nil
}

// brokenLimiter always fails; logins must still go through.
type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	return false, errors.New("limiter backend down")
}

func (brokenLimiter) RemainingSeconds(ctx context.Context, identifier string) (int, error) {
	return 0, errors.New("limiter backend down")
}

func newAuthFixture(t *testing.T, limiter ratelimit.Limiter) (*AuthService, *fakeUserStore, *fakeTokenStore) {
	t.Helper()
	if limiter == nil {
		limiter = ratelimit.NewMemoryLimiter()
	}
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub.test",
	})
	return NewAuthService(users, tokens, jwtService, limiter), users, tokens
}

func registerUser(t *testing.T, svc *AuthService, email string) *models.User {
	t.Helper()
	user, _, err := svc.Register(context.Background(), email, "Sekret123", "Jan", "Kowalski")
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return user
}

func TestRegisterIssuesTokensAndStudentRole(t *testing.T) {
	svc, _, tokens := newAuthFixture(t, nil)

	user, pair, err := svc.Register(context.Background(), "Student@Example.com", "Sekret123", "Jan", "Kowalski")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "student@example.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.RoleType != models.RoleStudent {
		t.Errorf("role = %q, want student", user.RoleType)
	}
	if user.Password == "Sekret123" {
		t.Error("password stored in plain text")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("token pair incomplete")
	}
	if _, ok := tokens.tokens[pair.RefreshToken]; !ok {
		t.Error("refresh token not persisted")
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)

	_, _, err := svc.Register(context.Background(), "student@example.com", "weakpass", "Jan", "Kowalski")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)
	registerUser(t, svc, "student@example.com")

	_, _, err := svc.Register(context.Background(), "student@example.com", "Sekret123", "Anna", "Nowak")
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	svc, users, _ := newAuthFixture(t, nil)
	registered := registerUser(t, svc, "student@example.com")

	user, pair, err := svc.Login(context.Background(), "student@example.com", "Sekret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user id = %d, want %d", user.ID, registered.ID)
	}
	if pair.AccessToken == "" {
		t.Error("no access token issued")
	}
	if len(users.lastLoginStamped) == 0 {
		t.Error("last login not stamped")
	}
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)
	registerUser(t, svc, "student@example.com")

	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "Sekret123")
	_, _, errWrong := svc.Login(context.Background(), "student@example.com", "Wrong1234")

	if !errors.Is(errUnknown, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrong, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Error("unknown email and wrong password produce distinguishable errors")
	}
}

func TestLoginRateLimitedAfterMaxAttempts(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)
	registerUser(t, svc, "student@example.com")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(ctx, "student@example.com", "Wrong1234")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v, want ErrInvalidCredentials", i+1, err)
		}
	}

	_, _, err := svc.Login(ctx, "student@example.com", "Sekret123")
	if !errors.Is(err, apperrors.ErrRateLimited) {
		t.Fatalf("6th attempt err = %v, want ErrRateLimited", err)
	}

	var custom *apperrors.CustomError
	if !errors.As(err, &custom) {
		t.Fatal("rate limit error is not a CustomError")
	}
	retryAfter, ok := custom.Details["retryAfter"].(int)
	if !ok {
		t.Fatal("rate limit error missing retryAfter detail")
	}
	if retryAfter <= 0 || retryAfter > int((15*time.Minute).Seconds()) {
		t.Errorf("retryAfter = %d, want within (0, 900]", retryAfter)
	}

	// Throttling is per address; another account is unaffected.
	registerUser(t, svc, "other@example.com")
	if _, _, err := svc.Login(ctx, "other@example.com", "Sekret123"); err != nil {
		t.Errorf("other account throttled too: %v", err)
	}
}

func TestLoginFailsOpenWhenLimiterIsDown(t *testing.T) {
	svc, _, _ := newAuthFixture(t, brokenLimiter{})
	registerUser(t, svc, "student@example.com")

	if _, _, err := svc.Login(context.Background(), "student@example.com", "Sekret123"); err != nil {
		t.Errorf("login with broken limiter failed: %v", err)
	}
}

func TestLoginDisabledAccountRejected(t *testing.T) {
	svc, users, _ := newAuthFixture(t, nil)
	user := registerUser(t, svc, "student@example.com")
	users.byID[user.ID].IsActive = false

	_, _, err := svc.Login(context.Background(), "student@example.com", "Sekret123")
	if !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Errorf("err = %v, want ErrAccountDisabled", err)
	}
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, tokens := newAuthFixture(t, nil)
	_, pair, err := svc.Register(context.Background(), "student@example.com", "Sekret123", "Jan", "Kowalski")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if fresh.RefreshToken == pair.RefreshToken {
		t.Error("refresh did not rotate the token")
	}
	if !tokens.tokens[pair.RefreshToken].isRevoked {
		t.Error("old refresh token not revoked")
	}

	// The old token must not work a second time.
	_, _, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	if !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Errorf("reused token err = %v, want ErrTokenRevoked", err)
	}
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, _, tokens := newAuthFixture(t, nil)
	user := registerUser(t, svc, "student@example.com")

	tokens.tokens["stale"] = &storedToken{
		userID:     user.ID,
		expiryDate: time.Now().Add(-time.Hour),
	}

	_, _, err := svc.RefreshToken(context.Background(), "stale")
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestRefreshTokenUnknown(t *testing.T) {
	svc, _, _ := newAuthFixture(t, nil)

	_, _, err := svc.RefreshToken(context.Background(), "never-issued")
	if !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Errorf("err = %v, want ErrTokenNotFound", err)
	}
}

func TestLogoutRevokesAllRefreshTokens(t *testing.T) {
	svc, _, tokens := newAuthFixture(t, nil)
	user := registerUser(t, svc, "student@example.com")
	if _, _, err := svc.Login(context.Background(), "student@example.com", "Sekret123"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	for token, stored := range tokens.tokens {
		if !stored.isRevoked {
			t.Errorf("token %q still active after logout", token)
		}
	}
}
