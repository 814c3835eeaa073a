package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoful/console-gateway/internal/identity"
)

// fakeSource lets tests emit provider session events by hand.
type fakeSource struct {
	listeners []func(*identity.Session)
}

func (f *fakeSource) Subscribe(fn func(*identity.Session)) func() {
	f.listeners = append(f.listeners, fn)
	return func() {}
}

func (f *fakeSource) emit(sess *identity.Session) {
	for _, fn := range f.listeners {
		fn(sess)
	}
}

type fakeVerifier struct {
	subject string
	err     error
}

func (f *fakeVerifier) VerifySubject(ctx context.Context, idToken string) (string, error) {
	return f.subject, f.err
}

func providerSession(subject string) *identity.Session {
	return &identity.Session{
		SubjectID:    subject,
		Email:        subject + "@example.com",
		IDToken:      "id-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func TestBridgeAdoptsPersistedUserOnSubjectMatch(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	saved := testUser("uid-match", RoleCustomer)
	require.NoError(t, p.Save(ctx, saved))

	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, nil)
	b.Run(ctx)
	defer b.Close()

	source.emit(providerSession("uid-match"))

	st := store.Snapshot()
	require.NotNil(t, st.User)
	assert.Equal(t, saved, st.User, "restored user must match the persisted record field for field")
	assert.True(t, st.Initialized)
}

func TestBridgeIgnoresPersistedUserOnSubjectMismatch(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, testUser("uid-old", RoleMechanic)))

	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, nil)
	b.Run(ctx)
	defer b.Close()

	source.emit(providerSession("uid-new"))

	st := store.Snapshot()
	assert.Nil(t, st.User, "a record for another subject must not be adopted")
	assert.True(t, st.Initialized)
}

func TestBridgeSettlesWithoutUserWhenNothingPersisted(t *testing.T) {
	p := newTestPersistence(t)
	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, nil)
	b.Run(context.Background())
	defer b.Close()

	source.emit(providerSession("uid-fresh"))

	st := store.Snapshot()
	assert.Nil(t, st.User)
	assert.True(t, st.Initialized)
}

func TestBridgeSignedOutEvent(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, testUser("uid-out", RoleCustomer)))

	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, nil)
	b.Run(ctx)
	defer b.Close()

	source.emit(nil)

	st := store.Snapshot()
	assert.Nil(t, st.User)
	assert.True(t, st.Initialized)

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "mirror must clear the persisted record once the user is gone")
}

func TestBridgeMirrorsUserChanges(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, nil)
	b.Run(ctx)
	defer b.Close()

	u := testUser("uid-login", RoleMechanic)
	store.SetUser(u)

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	store.SetUser(nil)

	got, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBridgeVerifierRejection(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	require.NoError(t, p.Save(ctx, testUser("uid-v", RoleCustomer)))

	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, &fakeVerifier{err: errors.New("token revoked")})
	b.Run(ctx)
	defer b.Close()

	source.emit(providerSession("uid-v"))

	st := store.Snapshot()
	assert.Nil(t, st.User, "a session the verifier rejects must not restore the user")
	assert.True(t, st.Initialized)
}

func TestBridgeVerifierAcceptance(t *testing.T) {
	p := newTestPersistence(t)
	ctx := context.Background()

	saved := testUser("uid-v", RoleCustomer)
	require.NoError(t, p.Save(ctx, saved))

	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, &fakeVerifier{subject: "uid-v"})
	b.Run(ctx)
	defer b.Close()

	source.emit(providerSession("uid-v"))

	st := store.Snapshot()
	require.NotNil(t, st.User)
	assert.Equal(t, saved, st.User)
}

func TestBridgeRunIsIdempotent(t *testing.T) {
	p := newTestPersistence(t)
	store := NewStore()
	source := &fakeSource{}
	b := NewBridge(store, p, source, nil)

	ctx := context.Background()
	b.Run(ctx)
	b.Run(ctx)
	defer b.Close()

	assert.Len(t, source.listeners, 1, "repeated Run must not stack subscriptions")
}
