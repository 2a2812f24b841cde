package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/requestdata"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type recordingWatcher struct {
	mu    sync.Mutex
	edges []SessionEvent
}

func (w *recordingWatcher) OnSessionChange(evt SessionEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.edges = append(w.edges, evt)
}

func (w *recordingWatcher) last() (SessionEvent, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.edges) == 0 {
		return SessionEvent{}, false
	}
	return w.edges[len(w.edges)-1], true
}

func newAuthServiceTTL(t *testing.T, refreshTTL time.Duration) (AuthService, *recordingWatcher, repos.UserTokenRepo) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.User{}, &types.UserToken{}))

	log := testLogger()
	watcher := &recordingWatcher{}
	tokens := repos.NewUserTokenRepo(db, log)
	svc := NewAuthService(
		db,
		repos.NewUserRepo(db, log),
		tokens,
		watcher,
		"test-secret",
		time.Hour, refreshTTL,
		log,
	)
	return svc, watcher, tokens
}

func newAuthService(t *testing.T) (AuthService, *recordingWatcher) {
	t.Helper()
	svc, watcher, _ := newAuthServiceTTL(t, 24*time.Hour)
	return svc, watcher
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, watcher := newAuthService(t)

	user, err := svc.Register(ctx, "Dina@Example.com", "correct horse", "Dina")
	require.NoError(t, err)
	assert.Equal(t, "dina@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.Password, "password must be stored hashed")

	access, refresh, err := svc.Login(ctx, "dina@example.com", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	edge, ok := watcher.last()
	require.True(t, ok, "login must notify the session watcher")
	require.NotNil(t, edge.UserID)
	assert.Equal(t, user.ID, *edge.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Register(ctx, "dina@example.com", "correct horse", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "dina@example.com", "other password", "")
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, watcher := newAuthService(t)

	_, err := svc.Register(ctx, "dina@example.com", "correct horse", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "dina@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := watcher.last()
	assert.False(t, ok, "failed logins never reach the watcher")
}

func TestAccessTokenRestoresIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	user, err := svc.Register(ctx, "dina@example.com", "correct horse", "")
	require.NoError(t, err)
	access, _, err := svc.Login(ctx, "dina@example.com", "correct horse")
	require.NoError(t, err)

	authed, err := svc.SetContextFromToken(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, requestdata.UserID(authed))

	_, err = svc.SetContextFromToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestRefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	user, err := svc.Register(ctx, "dina@example.com", "correct horse", "")
	require.NoError(t, err)
	_, refresh, err := svc.Login(ctx, "dina@example.com", "correct horse")
	require.NoError(t, err)

	authed := requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: user.ID})

	_, rotated, err := svc.Refresh(authed, refresh)
	require.NoError(t, err)
	assert.NotEqual(t, refresh, rotated)

	// The old token is dead after rotation.
	_, _, err = svc.Refresh(authed, refresh)
	assert.Error(t, err)
}

// An expired refresh token is a dead session: the watcher must see the
// sign-out edge even though the user never called logout.
func TestExpiredRefreshEmitsSignOutEdge(t *testing.T) {
	ctx := context.Background()
	svc, watcher, tokens := newAuthServiceTTL(t, -time.Minute)

	user, err := svc.Register(ctx, "dina@example.com", "correct horse", "")
	require.NoError(t, err)
	_, refresh, err := svc.Login(ctx, "dina@example.com", "correct horse")
	require.NoError(t, err)

	authed := requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: user.ID})
	_, _, err = svc.Refresh(authed, refresh)
	require.Error(t, err)

	edge, ok := watcher.last()
	require.True(t, ok)
	assert.Nil(t, edge.UserID, "expiry must surface as a sign-out edge")

	// The dead token is gone; a retry cannot resurrect the session.
	_, err = tokens.GetByUserID(ctx, nil, user.ID)
	assert.Error(t, err)
}

// Logging in sweeps refresh tokens whose owners never signed out.
func TestLoginPurgesExpiredTokens(t *testing.T) {
	ctx := context.Background()
	svc, _, tokens := newAuthServiceTTL(t, 24*time.Hour)

	stranger := uuid.New()
	_, err := tokens.Create(ctx, nil, &types.UserToken{
		UserID:       stranger,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dina@example.com", "correct horse", "")
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "dina@example.com", "correct horse")
	require.NoError(t, err)

	_, err = tokens.GetByUserID(ctx, nil, stranger)
	assert.Error(t, err, "stale token must be swept during login")
}

func TestLogoutNotifiesWatcherWithSignOutEdge(t *testing.T) {
	ctx := context.Background()
	svc, watcher := newAuthService(t)

	user, err := svc.Register(ctx, "dina@example.com", "correct horse", "")
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "dina@example.com", "correct horse")
	require.NoError(t, err)

	authed := requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: user.ID})
	require.NoError(t, svc.Logout(authed))

	edge, ok := watcher.last()
	require.True(t, ok)
	assert.Nil(t, edge.UserID, "sign-out edge carries no user")
}
