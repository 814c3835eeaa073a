package identity

import (
	"context"
	"log"
	"sync"

	"golang.org/x/oauth2"
)

// SessionStorage persists the provider session (refresh token included)
// so a gateway restart can restore it, the way a browser SDK keeps its
// own session in local storage. Owned exclusively by the Supplier.
type SessionStorage interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// Supplier is the token supplier: it owns the current provider session,
// hands out fresh bearer tokens on demand, and notifies subscribers on
// every session change. Token caching and refresh run through an
// oauth2.ReuseTokenSource so callers always get a live token without
// hammering the refresh endpoint.
type Supplier struct {
	client  *Client
	storage SessionStorage // optional

	mu      sync.Mutex
	current *Session
	tokens  oauth2.TokenSource
	subs    map[int]func(*Session)
	next    int
}

func NewSupplier(client *Client, storage SessionStorage) *Supplier {
	return &Supplier{
		client:  client,
		storage: storage,
		subs:    make(map[int]func(*Session)),
	}
}

// SignIn authenticates with the provider and makes the resulting
// session current.
func (s *Supplier) SignIn(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(ctx, sess)
	return sess, nil
}

// SignUp creates a provider account and makes the resulting session
// current.
func (s *Supplier) SignUp(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.client.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(ctx, sess)
	return sess, nil
}

// SignOut drops the current session and its stored copy. The provider
// keeps no server-side session to terminate; discarding the credentials
// is the sign-out.
func (s *Supplier) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.tokens = nil
	s.mu.Unlock()

	if s.storage != nil {
		if err := s.storage.Clear(ctx); err != nil {
			log.Printf("[warn] operation=clear_provider_session error=%v", err)
		}
	}
	s.notify(nil)
	return nil
}

// Restore loads the stored provider session and proves it is still
// live by refreshing it. Exactly one session event is emitted: the
// refreshed session, or nil when there is nothing restorable.
func (s *Supplier) Restore(ctx context.Context) error {
	if s.storage == nil {
		s.notify(nil)
		return nil
	}

	stored, err := s.storage.Load(ctx)
	if err != nil {
		log.Printf("[warn] operation=load_provider_session error=%v", err)
	}
	if stored == nil {
		s.notify(nil)
		return nil
	}

	sess, err := s.client.Refresh(ctx, stored)
	if err != nil {
		// Stored session is dead; drop it rather than keep retrying.
		if clearErr := s.storage.Clear(ctx); clearErr != nil {
			log.Printf("[warn] operation=clear_provider_session error=%v", clearErr)
		}
		s.notify(nil)
		return err
	}

	s.adopt(ctx, sess)
	return nil
}

// Refresh forces a token refresh of the current session.
func (s *Supplier) Refresh(ctx context.Context) error {
	cur := s.Current()
	if cur == nil {
		return ErrNoSession
	}
	sess, err := s.client.Refresh(ctx, cur)
	if err != nil {
		return err
	}
	s.adopt(ctx, sess)
	return nil
}

// Current returns the current session, nil when signed out.
func (s *Supplier) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// HasSession reports whether anyone is signed in.
func (s *Supplier) HasSession() bool {
	return s.Current() != nil
}

// Token returns a fresh ID token for the current session, refreshing
// through the provider when the cached one is stale.
func (s *Supplier) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	ts := s.tokens
	s.mu.Unlock()

	if ts == nil {
		return "", ErrNoSession
	}
	tok, err := ts.Token()
	if err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Subscribe registers a session-change listener, called with the new
// session (nil on sign-out). The returned function removes it.
func (s *Supplier) Subscribe(fn func(*Session)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// adopt installs sess as the current session, rebuilds the token
// source, persists the session, and notifies subscribers.
func (s *Supplier) adopt(ctx context.Context, sess *Session) {
	s.mu.Lock()
	s.current = sess
	s.tokens = oauth2.ReuseTokenSource(oauthToken(sess), &refreshSource{s: s})
	s.mu.Unlock()

	if s.storage != nil {
		if err := s.storage.Save(ctx, sess); err != nil {
			log.Printf("[warn] operation=save_provider_session error=%v", err)
		}
	}
	s.notify(sess)
}

func (s *Supplier) notify(sess *Session) {
	s.mu.Lock()
	fns := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(sess)
	}
}

func oauthToken(sess *Session) *oauth2.Token {
	return &oauth2.Token{
		AccessToken: sess.IDToken,
		TokenType:   "Bearer",
		Expiry:      sess.ExpiresAt,
	}
}

// refreshSource is the oauth2.TokenSource behind ReuseTokenSource: it
// only runs when the cached token has expired.
type refreshSource struct {
	s *Supplier
}

func (r *refreshSource) Token() (*oauth2.Token, error) {
	cur := r.s.Current()
	if cur == nil {
		return nil, ErrNoSession
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	sess, err := r.s.client.Refresh(ctx, cur)
	if err != nil {
		return nil, err
	}
	r.s.adopt(ctx, sess)
	return oauthToken(sess), nil
}
