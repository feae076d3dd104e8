// Package services contains application services for the catering client.
// Each service owns one piece of client state behind a mutex and changes it
// only through its methods; network calls are made outside the lock.
// This file defines the session store: login, logout and the current
// session, persisted through a session.Repository.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/cateringplus/internal/client/client"
	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/client/repositories/session"
	"github.com/dmitrijs2005/cateringplus/internal/logging"
)

// AuthAPI is the part of the gateway the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (client.LoginResult, error)
}

type SessionService struct {
	api  AuthAPI
	repo session.Repository
	log  logging.Logger

	mu      sync.RWMutex
	current models.Session
}

// NewSessionService builds the store and initializes it from repo. An
// unreadable record is logged and treated as logged out.
func NewSessionService(ctx context.Context, api AuthAPI, repo session.Repository, log logging.Logger) *SessionService {
	s := &SessionService{api: api, repo: repo, log: log.With("component", "session")}

	stored, err := repo.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "stored session unreadable, starting logged out", "error", err)
		return s
	}
	s.current = stored
	return s
}

// Login authenticates against the backend and persists the new session.
// On any failure the previous session is left as it was.
func (s *SessionService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if err := validateStruct(creds); err != nil {
		return models.Session{}, err
	}

	res, err := s.api.Login(ctx, creds)
	if err != nil {
		s.log.Warn(ctx, "login failed", "email", creds.Email, "error", err)
		return models.Session{}, &AuthError{Err: err}
	}

	sess := models.Session{Token: res.Token, UserID: res.UserID, UserName: res.UserName}
	applyTokenClaims(&sess)

	if err := s.repo.Save(ctx, sess); err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "user_id", sess.UserID)
	return sess, nil
}

// Logout clears the in-memory and persisted session. Calling it while
// logged out is a no-op apart from the storage delete.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = models.Session{}
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear stored session", "error", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *SessionService) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token implements client.TokenSource.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}
