package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-chi/jwtauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// DefaultTokenTTL is the token expiration window used when none is
// configured.
const DefaultTokenTTL = time.Hour

// Identity is the payload embedded in an issued token.
type Identity struct {
	Username string `json:"username"`
}

// Config options for the credential gate
type Config struct {
	Secret   string        // HMAC signing secret, process-wide, loaded once
	TokenTTL time.Duration // Expiration window for issued tokens
}

// Gate verifies the stored credential and issues/validates signed,
// time-limited access tokens. Token verification is stateless; there is no
// server-side session store.
type Gate struct {
	docs      portfolio.DocumentStore
	tokenAuth *jwtauth.JWTAuth
	tokenTTL  time.Duration
}

// New creates a credential gate reading the stored credential from docs.
func New(docs portfolio.DocumentStore, cfg Config) (*Gate, error) {
	if docs == nil {
		return nil, errors.New("document store is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("signing secret is required")
	}

	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	return &Gate{
		docs:      docs,
		tokenAuth: jwtauth.New("HS256", []byte(cfg.Secret), nil),
		tokenTTL:  ttl,
	}, nil
}

// HashPassword produces a salted bcrypt hash suitable for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// dummyHash is a valid bcrypt hash compared against on the wrong-username
// path, so both rejection paths cost one bcrypt comparison.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Authenticate checks username and password against the stored credential.
// A wrong username and a wrong password both return
// portfolio.ErrInvalidCredentials, and both paths run a bcrypt comparison,
// so neither the response value nor its timing reveals which part
// mismatched.
func (g *Gate) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	doc, err := g.docs.Read(ctx)
	if err != nil {
		return nil, &portfolio.StorageError{Op: "read credential", Err: err}
	}

	cred := doc.User
	if cred.Username == "" || cred.Username != username {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, portfolio.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, portfolio.ErrInvalidCredentials
	}

	return &Identity{Username: cred.Username}, nil
}

// IssueToken produces a signed token embedding the identity with a fixed
// expiration window.
func (g *Gate) IssueToken(identity *Identity) (string, error) {
	claims := map[string]interface{}{
		"username": identity.Username,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, g.tokenTTL)

	_, tokenString, err := g.tokenAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// VerifyToken validates a bearer token. An empty token yields
// portfolio.ErrNoToken; a malformed, expired or wrongly-signed one yields
// portfolio.ErrTokenInvalid; otherwise the embedded identity is returned.
func (g *Gate) VerifyToken(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, portfolio.ErrNoToken
	}

	token, err := jwtauth.VerifyToken(g.tokenAuth, tokenString)
	if err != nil {
		return nil, portfolio.ErrTokenInvalid
	}

	username, _ := token.Get("username")
	name, _ := username.(string)
	if name == "" {
		return nil, portfolio.ErrTokenInvalid
	}

	return &Identity{Username: name}, nil
}

// SeedCredential stores a credential when none exists yet. It never
// overwrites an existing one, so a deployed password cannot be reset by a
// restart with stale environment values.
func (g *Gate) SeedCredential(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	doc, err := g.docs.Read(ctx)
	if err != nil {
		return &portfolio.StorageError{Op: "read credential", Err: err}
	}
	if doc.User.Username != "" {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	doc.User = portfolio.Credential{Username: username, PasswordHash: hash}
	if err := g.docs.Write(ctx, doc); err != nil {
		return &portfolio.StorageError{Op: "write credential", Err: err}
	}
	return nil
}
