package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthClient struct {
	signInErr  error
	signOutErr error

	signedOutTokens []string
}

func (f *fakeAuthClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}

	return &Session{
		UserID:       "user-1",
		Email:        email,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	}, nil
}

func (f *fakeAuthClient) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	return &Session{AccessToken: "refreshed-token", RefreshToken: refreshToken}, nil
}

func (f *fakeAuthClient) SignOut(ctx context.Context, accessToken string) error {
	f.signedOutTokens = append(f.signedOutTokens, accessToken)
	return f.signOutErr
}

func TestManagerSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("installs the session and notifies listeners", func(t *testing.T) {
		manager := NewManager(&fakeAuthClient{})

		var notifications []*Session
		manager.OnChange(func(s *Session) {
			notifications = append(notifications, s)
		})

		require.NoError(t, manager.SignIn(ctx, "trader@example.com", "hunter2"))

		current := manager.Current()
		require.NotNil(t, current)
		assert.Equal(t, "trader@example.com", current.Email)

		require.Len(t, notifications, 1)
		assert.Equal(t, "trader@example.com", notifications[0].Email)
	})

	t.Run("a failed sign-in leaves no session", func(t *testing.T) {
		manager := NewManager(&fakeAuthClient{signInErr: fmt.Errorf("invalid credentials")})

		assert.Error(t, manager.SignIn(ctx, "trader@example.com", "wrong"))
		assert.Nil(t, manager.Current())
	})
}

func TestManagerSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token and clears the session", func(t *testing.T) {
		client := &fakeAuthClient{}
		manager := NewManager(client)
		require.NoError(t, manager.SignIn(ctx, "trader@example.com", "hunter2"))

		var notifications []*Session
		manager.OnChange(func(s *Session) {
			notifications = append(notifications, s)
		})

		require.NoError(t, manager.SignOut(ctx))

		assert.Nil(t, manager.Current())
		assert.Equal(t, []string{"access-token"}, client.signedOutTokens)

		require.Len(t, notifications, 1)
		assert.Nil(t, notifications[0])
	})

	t.Run("clears the local session even when revocation fails", func(t *testing.T) {
		client := &fakeAuthClient{signOutErr: fmt.Errorf("service unavailable")}
		manager := NewManager(client)
		require.NoError(t, manager.SignIn(ctx, "trader@example.com", "hunter2"))

		err := manager.SignOut(ctx)
		assert.Error(t, err)
		assert.Nil(t, manager.Current())
	})

	t.Run("signing out while signed out is a no-op", func(t *testing.T) {
		client := &fakeAuthClient{}
		manager := NewManager(client)

		require.NoError(t, manager.SignOut(ctx))
		assert.Empty(t, client.signedOutTokens)
	})
}

func TestManagerOnChange(t *testing.T) {
	ctx := context.Background()

	t.Run("the returned function removes the listener", func(t *testing.T) {
		manager := NewManager(&fakeAuthClient{})

		var count int
		unsubscribe := manager.OnChange(func(*Session) { count++ })

		require.NoError(t, manager.SignIn(ctx, "trader@example.com", "hunter2"))
		unsubscribe()
		require.NoError(t, manager.SignOut(ctx))

		assert.Equal(t, 1, count)
	})

	t.Run("teardown removes every listener", func(t *testing.T) {
		manager := NewManager(&fakeAuthClient{})

		var count int
		manager.OnChange(func(*Session) { count++ })
		manager.OnChange(func(*Session) { count++ })

		manager.Teardown()
		require.NoError(t, manager.SignIn(ctx, "trader@example.com", "hunter2"))

		assert.Zero(t, count)
	})
}

func TestSessionIsExpired(t *testing.T) {
	now := time.Now().UTC()

	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.IsExpired(now))
	assert.True(t, s.IsExpired(now.Add(2*time.Minute)))
}
