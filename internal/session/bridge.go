package session

import (
	"context"
	"log"
	"sync"

	"github.com/autoful/console-gateway/internal/identity"
)

// SessionSource is the slice of the token supplier the bridge listens
// to. Events carry the provider session, or nil when signed out.
type SessionSource interface {
	Subscribe(fn func(*identity.Session)) func()
}

// TokenVerifier cross-checks a restored session's ID token against the
// identity provider and returns its subject id.
type TokenVerifier interface {
	VerifySubject(ctx context.Context, idToken string) (string, error)
}

// Bridge reconciles three parties: the identity provider's session
// events, the durable user snapshot, and the Store. It adopts the
// persisted user only when its subject id matches the live provider
// session, and mirrors every user change back to durable storage.
//
// The provider listener and the store mirror are independent
// subscriptions with no ordering guarantee between them; both converge
// on the same user value once the dust settles, so either order is
// safe.
type Bridge struct {
	store    *Store
	persist  Persistence
	source   SessionSource
	verifier TokenVerifier // optional

	once   sync.Once
	unsubs []func()

	mu        sync.Mutex
	lastWrite *User
}

// NewBridge wires a bridge. verifier may be nil, in which case restored
// sessions are trusted on subject-id match alone.
func NewBridge(store *Store, persist Persistence, source SessionSource, verifier TokenVerifier) *Bridge {
	return &Bridge{store: store, persist: persist, source: source, verifier: verifier}
}

// Run starts the bridge. It is idempotent: only the first call does
// anything. The persisted user is read before the provider listener is
// attached; it seeds the mirror but is not adopted into the store until
// the provider confirms a session with a matching subject — adopting it
// early would leave a stale user behind on a subject mismatch.
func (b *Bridge) Run(ctx context.Context) {
	b.once.Do(func() {
		stored, err := b.persist.Load(ctx)
		if err != nil {
			log.Printf("[warn] operation=load_persisted_user error=%v", err)
			stored = nil
		}
		b.lastWrite = stored

		b.unsubs = append(b.unsubs, b.store.Subscribe(b.mirror))
		b.unsubs = append(b.unsubs, b.source.Subscribe(b.onSession))
	})
}

// Close cancels both subscriptions together.
func (b *Bridge) Close() {
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
}

// onSession handles one provider session event.
func (b *Bridge) onSession(sess *identity.Session) {
	ctx := context.Background()

	if sess == nil {
		b.store.SetUser(nil)
		return
	}

	stored, err := b.persist.Load(ctx)
	if err != nil {
		log.Printf("[warn] operation=load_persisted_user error=%v", err)
	}
	if stored == nil || stored.SubjectID != sess.SubjectID {
		// A live provider session with no adoptable local record: the
		// provider alone cannot tell us role or backend id, so the
		// operator must log in again.
		b.store.SetInitialized()
		return
	}

	if b.verifier != nil {
		sub, err := b.verifier.VerifySubject(ctx, sess.IDToken)
		if err != nil || sub != stored.SubjectID {
			log.Printf("[warn] operation=verify_restored_session error=%v", err)
			b.store.SetInitialized()
			return
		}
	}

	b.store.SetUser(stored)
}

// mirror writes the user to durable storage whenever it changed since
// the last write. Storage failures are swallowed: durability is a
// convenience, not a correctness requirement.
func (b *Bridge) mirror(st State) {
	b.mu.Lock()
	if st.User.Equal(b.lastWrite) {
		b.mu.Unlock()
		return
	}
	b.lastWrite = st.User
	b.mu.Unlock()

	ctx := context.Background()
	var err error
	if st.User != nil {
		err = b.persist.Save(ctx, st.User)
	} else {
		err = b.persist.Clear(ctx)
	}
	if err != nil {
		log.Printf("[warn] operation=persist_user error=%v", err)
	}
}
