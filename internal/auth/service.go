// Package auth fuses the identity provider's sessions with the
// backend's customer and mechanic records into the canonical
// application user, and drives the session store through every auth
// operation.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/autoful/console-gateway/internal/gateway"
	"github.com/autoful/console-gateway/internal/identity"
	"github.com/autoful/console-gateway/internal/session"
)

// ErrNotAuthenticated is returned by operations that need a signed-in
// operator when there is none.
var ErrNotAuthenticated = errors.New("auth: no authenticated user")

// IdentityProvider is the slice of the token supplier the service uses.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*identity.Session, error)
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	SignOut(ctx context.Context) error
	Current() *identity.Session
}

// Service implements registration, login, logout and profile updates.
// Every operation brackets the store (Begin, then Succeed or Fail);
// failures land in the store's error slot and are additionally returned
// so HTTP handlers can pick a status code. Operations are not
// serialized against each other: callers issue one at a time.
type Service struct {
	idp   IdentityProvider
	gw    *gateway.Client
	store *session.Store
}

func NewService(idp IdentityProvider, gw *gateway.Client, store *session.Store) *Service {
	return &Service{idp: idp, gw: gw, store: store}
}

// RegisterCustomer creates the identity-provider account, then the
// backend customer record carrying the provider's subject id. A backend
// failure does not roll back the provider account: the orphaned account
// is a known gap, there is no compensating delete.
func (s *Service) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*session.User, error) {
	s.store.Begin()

	sess, err := s.idp.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return s.reject(err)
	}

	created, err := s.gw.CreateCustomer(ctx, gateway.CreateCustomerInput{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Password:    in.Password,
		FirebaseUID: sess.SubjectID,
	})
	if err != nil {
		return s.reject(err)
	}

	return s.fulfill(fuse(sess, session.RoleCustomer, created.ID, in.Name))
}

// RegisterMechanic mirrors RegisterCustomer against the mechanic
// resource, forwarding the salary.
func (s *Service) RegisterMechanic(ctx context.Context, in RegisterMechanicInput) (*session.User, error) {
	s.store.Begin()

	sess, err := s.idp.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return s.reject(err)
	}

	created, err := s.gw.CreateMechanic(ctx, gateway.CreateMechanicInput{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Salary:      in.Salary,
		Password:    in.Password,
		FirebaseUID: sess.SubjectID,
	})
	if err != nil {
		return s.reject(err)
	}

	return s.fulfill(fuse(sess, session.RoleMechanic, created.ID, in.Name))
}

// LoginCustomer authenticates with the provider, then resolves the
// backend id and canonical name through the backend's login endpoint.
// Either failure fails the whole operation.
func (s *Service) LoginCustomer(ctx context.Context, email, password string) (*session.User, error) {
	s.store.Begin()

	sess, err := s.idp.SignIn(ctx, email, password)
	if err != nil {
		return s.reject(err)
	}

	resp, err := s.gw.LoginCustomer(ctx, email, password)
	if err != nil {
		return s.reject(err)
	}

	return s.fulfill(fuse(sess, session.RoleCustomer, resp.CustomerID, resp.Name))
}

// LoginMechanic is the mechanic mirror of LoginCustomer.
func (s *Service) LoginMechanic(ctx context.Context, email, password string) (*session.User, error) {
	s.store.Begin()

	sess, err := s.idp.SignIn(ctx, email, password)
	if err != nil {
		return s.reject(err)
	}

	resp, err := s.gw.LoginMechanic(ctx, email, password)
	if err != nil {
		return s.reject(err)
	}

	return s.fulfill(fuse(sess, session.RoleMechanic, resp.MechanicID, resp.Name))
}

// Logout terminates the identity-provider session. Backend state is
// untouched.
func (s *Service) Logout(ctx context.Context) error {
	s.store.Begin()
	if err := s.idp.SignOut(ctx); err != nil {
		s.store.Fail(err.Error())
		return err
	}
	s.store.Succeed(nil, false)
	return nil
}

// UpdateProfile writes the edited fields to the backend, then rebuilds
// the user from backend-confirmed values rather than trusting the
// locally optimistic ones.
func (s *Service) UpdateProfile(ctx context.Context, in ProfileUpdateInput) (*session.User, error) {
	s.store.Begin()

	current := s.store.Snapshot().User
	sess := s.idp.Current()
	if current == nil || sess == nil {
		return s.reject(ErrNotAuthenticated)
	}

	update := gateway.ProfileUpdate{Name: in.Name, Phone: in.Phone}
	var err error
	if current.Role == session.RoleCustomer {
		_, err = s.gw.UpdateCustomer(ctx, current.BackendID, update)
	} else {
		_, err = s.gw.UpdateMechanic(ctx, current.BackendID, update)
	}
	if err != nil {
		return s.reject(err)
	}

	user, err := s.RefreshUserData(ctx, sess, current.Role, current.BackendID)
	if err != nil {
		return s.reject(err)
	}
	s.store.Succeed(user, false)
	return user, nil
}

// RefreshUserData re-fetches the backend entity and rebuilds the user's
// display name from it. It does not touch the store; callers decide
// what to do with the result.
func (s *Service) RefreshUserData(ctx context.Context, sess *identity.Session, role session.Role, backendID int64) (*session.User, error) {
	var name string
	switch role {
	case session.RoleCustomer:
		c, err := s.gw.GetCustomer(ctx, backendID)
		if err != nil {
			return nil, err
		}
		name = c.Name
	case session.RoleMechanic:
		m, err := s.gw.GetMechanic(ctx, backendID)
		if err != nil {
			return nil, err
		}
		name = m.Name
	default:
		return nil, fmt.Errorf("auth: unrecognized role %q", role)
	}
	return fuse(sess, role, backendID, name), nil
}

func (s *Service) fulfill(u *session.User) (*session.User, error) {
	s.store.Succeed(u, true)
	return u, nil
}

func (s *Service) reject(err error) (*session.User, error) {
	s.store.Fail(err.Error())
	return nil, err
}

// fuse composes the canonical user from a provider session and a
// backend entity. The display name comes from the backend, falling
// back to the provider profile.
func fuse(sess *identity.Session, role session.Role, backendID int64, displayName string) *session.User {
	if displayName == "" {
		displayName = sess.DisplayName
	}
	return &session.User{
		SubjectID:   sess.SubjectID,
		Email:       sess.Email,
		DisplayName: displayName,
		Role:        role,
		BackendID:   backendID,
	}
}
