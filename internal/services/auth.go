package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/requestdata"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
	"github.com/daybook-app/daybook-backend/internal/types"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService manages cloud accounts and session tokens. It is the
// opaque session source the orchestrator observes: every sign-in and
// sign-out edge is forwarded to the registered SessionWatcher, and
// that is the only coupling between the two.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db         *gorm.DB
	log        *logger.Logger
	users      repos.UserRepo
	tokens     repos.UserTokenRepo
	watcher    SessionWatcher
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(
	db *gorm.DB,
	users repos.UserRepo,
	tokens repos.UserTokenRepo,
	watcher SessionWatcher,
	jwtSecret string,
	accessTTL, refreshTTL time.Duration,
	baseLog *logger.Logger,
) AuthService {
	return &authService{
		db:         db,
		log:        baseLog.With("service", "AuthService"),
		users:      users,
		tokens:     tokens,
		watcher:    watcher,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) Register(ctx context.Context, email, password, displayName string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("email and a password of at least 8 characters are required")
	}
	exists, err := as.users.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &types.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: strings.TrimSpace(displayName),
	}
	return as.users.Create(ctx, nil, user)
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.users.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, syncerr.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Login doubles as the janitor for tokens whose owners never
		// signed out.
		if err := as.tokens.DeleteExpired(ctx, tx, time.Now()); err != nil {
			return err
		}
		if err := as.tokens.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return err
		}
		token := &types.UserToken{
			UserID:       user.ID,
			RefreshToken: uuid.NewString(),
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		created, err := as.tokens.Create(ctx, tx, token)
		if err != nil {
			return err
		}
		refreshToken = created.RefreshToken
		return nil
	}); err != nil {
		return "", "", err
	}

	accessToken, err := as.generateAccessToken(user.ID)
	if err != nil {
		return "", "", err
	}

	if as.watcher != nil {
		userID := user.ID
		as.watcher.OnSessionChange(SessionEvent{UserID: &userID})
	}
	return accessToken, refreshToken, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", "", fmt.Errorf("missing refresh token")
	}
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return "", "", fmt.Errorf("no active session")
	}

	stored, err := as.tokens.GetByUserID(ctx, nil, userID)
	if err != nil {
		return "", "", err
	}
	if stored.RefreshToken != refreshToken {
		return "", "", fmt.Errorf("refresh token mismatch")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		// Session expiry is a sign-out edge like any other: the
		// orchestrator must observe it so the local wipe runs.
		if err := as.tokens.DeleteByUserID(ctx, nil, userID); err != nil {
			as.log.Warn("Failed to purge expired refresh token", "error", err)
		}
		if as.watcher != nil {
			as.watcher.OnSessionChange(SessionEvent{UserID: nil})
		}
		return "", "", fmt.Errorf("refresh token expired")
	}

	var rotated string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.tokens.DeleteByUserID(ctx, tx, userID); err != nil {
			return err
		}
		token := &types.UserToken{
			UserID:       userID,
			RefreshToken: uuid.NewString(),
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		created, err := as.tokens.Create(ctx, tx, token)
		if err != nil {
			return err
		}
		rotated = created.RefreshToken
		return nil
	}); err != nil {
		return "", "", err
	}

	accessToken, err := as.generateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	return accessToken, rotated, nil
}

// Logout revokes the session's refresh token and notifies the session
// watcher. Revocation failing never blocks the sign-out itself: the
// edge still reaches the orchestrator so the local wipe runs.
func (as *authService) Logout(ctx context.Context) error {
	userID := requestdata.UserID(ctx)
	if userID == uuid.Nil {
		return fmt.Errorf("no active session")
	}

	var revokeErr error
	if err := as.tokens.DeleteByUserID(ctx, nil, userID); err != nil {
		as.log.Warn("Failed to revoke refresh token during sign-out", "error", err)
		revokeErr = err
	}

	if as.watcher != nil {
		as.watcher.OnSessionChange(SessionEvent{UserID: nil})
	}
	return revokeErr
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}), nil
}

func (as *authService) generateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(as.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}
