// Package session keeps the logged-in user's bearer token in the local
// database and answers "who is logged in" for the rest of the client.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
	"github.com/dmitrijs2005/storyshare/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storyshare/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("no session")

const (
	keyToken  = "token"
	keyName   = "name"
	keyUserID = "user_id"
)

// Store persists one session. Token satisfies the AuthContext role used by
// story submission and the feed.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, r models.LoginResult) error {
	if r.Token == "" {
		return fmt.Errorf("save session: empty token")
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for k, v := range map[string]string{keyToken: r.Token, keyName: r.Name, keyUserID: r.UserID} {
			if err := repo.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the stored session or ErrNoSession.
func (s *Store) Load(ctx context.Context) (*models.LoginResult, error) {
	values, err := metadata.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	token := values[keyToken]
	if token == "" {
		return nil, ErrNoSession
	}
	return &models.LoginResult{
		UserID: values[keyUserID],
		Name:   values[keyName],
		Token:  token,
	}, nil
}

func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, k := range []string{keyToken, keyName, keyUserID} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Token returns the stored bearer token, or false when nobody is logged in
// or the token is a JWT whose exp has passed. Tokens that are not JWTs are
// returned as they are.
func (s *Store) Token(ctx context.Context) (string, bool) {
	r, err := s.Load(ctx)
	if err != nil {
		return "", false
	}
	if expired(r.Token, s.now()) {
		return "", false
	}
	return r.Token, true
}

func expired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}
