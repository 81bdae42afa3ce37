// Package session implements credential sign-in, token-backed session
// lookup and sign-out, with change notification for interested listeners.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ren89/property-listing-app/internal/auth"
	"github.com/ren89/property-listing-app/internal/db"
	"github.com/ren89/property-listing-app/internal/models"
	"github.com/ren89/property-listing-app/internal/services"
)

// Session state errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
	ErrAccountExists      = errors.New("an account with this email already exists")
)

const accountsCollection = "accounts"

// Event describes a session state change delivered to subscribers.
type Event struct {
	SignedIn bool
	User     *models.User
}

// Listener receives session events. Callbacks run synchronously on the
// goroutine that triggered the change.
type Listener func(Event)

// IStore is the session collaborator surface the API layer consumes.
type IStore interface {
	SignUp(ctx context.Context, email, password, name string) (*models.User, string, error)
	SignIn(ctx context.Context, email, password string) (*models.User, string, error)
	SignOut(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (*models.User, string, error)
	Subscribe(fn Listener) int
	Unsubscribe(id int)
}

// Store implements IStore on Mongo accounts, Redis session records and
// signed tokens.
type Store struct {
	db         *mongo.Database
	rdb        *redis.Client
	users      services.IUserService
	signingKey string
	ttl        time.Duration

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a session store. ttl bounds how long an issued token's
// server-side record lives.
func NewStore(database *mongo.Database, rdb *redis.Client, users services.IUserService, signingKey string, ttl time.Duration) *Store {
	return &Store{
		db:         database,
		rdb:        rdb,
		users:      users,
		signingKey: signingKey,
		ttl:        ttl,
		listeners:  make(map[int]Listener),
	}
}

// SignUp registers a new account with the User role, materialises its
// profile and starts a session. Returns the profile and the session token.
func (s *Store) SignUp(ctx context.Context, email, password, name string) (*models.User, string, error) {
	collection := s.db.Collection(accountsCollection)

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, "", fmt.Errorf("failed to check account uniqueness: %w", err)
	}
	if count > 0 {
		return nil, "", ErrAccountExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	var account *models.Account
	operation := func() error {
		account = &models.Account{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		_, insertErr := collection.InsertOne(ctx, account)
		return insertErr
	}
	if err := db.Try(operation); err != nil {
		return nil, "", fmt.Errorf("failed to insert account after multiple retries: %w", err)
	}

	user, err := s.users.CreateUser(ctx, account.ID, email, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create profile for new account: %w", err)
	}

	token, err := s.issue(ctx, account)
	if err != nil {
		return nil, "", err
	}

	s.notify(Event{SignedIn: true, User: user})
	return user, token, nil
}

// SignIn verifies the credentials and starts a session. A missing profile
// is materialised on the spot so older accounts keep working.
func (s *Store) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	var account models.Account
	collection := s.db.Collection(accountsCollection)

	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error finding account: %w", err)
	}

	if !auth.CheckPasswordHash(password, account.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.profileFor(ctx, &account)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issue(ctx, &account)
	if err != nil {
		return nil, "", err
	}

	s.notify(Event{SignedIn: true, User: user})
	return user, token, nil
}

// SignOut revokes the session record behind the token. A token that is
// already expired or revoked signs out cleanly.
func (s *Store) SignOut(ctx context.Context, token string) error {
	claims, err := auth.ValidateJWT(token, s.signingKey)
	if err != nil {
		// Nothing server-side to revoke.
		s.notify(Event{SignedIn: false})
		return nil
	}

	if err := s.rdb.Del(ctx, sessionKey(claims.ID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.notify(Event{SignedIn: false})
	return nil
}

// Current resolves a token to its profile and role. It fails with
// ErrNoSession when the token is invalid, expired or revoked.
func (s *Store) Current(ctx context.Context, token string) (*models.User, string, error) {
	claims, err := auth.ValidateJWT(token, s.signingKey)
	if err != nil {
		return nil, "", ErrNoSession
	}

	userID, err := s.rdb.Get(ctx, sessionKey(claims.ID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", ErrNoSession
		}
		return nil, "", fmt.Errorf("failed to look up session record: %w", err)
	}
	if userID != claims.UserID {
		return nil, "", ErrNoSession
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrNoSession
		}
		return nil, "", err
	}

	return user, claims.Role, nil
}

// Subscribe registers a listener for session changes and returns a handle
// for Unsubscribe.
func (s *Store) Subscribe(fn Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners[s.nextID] = fn
	return s.nextID
}

// Unsubscribe removes a previously registered listener. Unknown handles
// are ignored.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// issue mints a token and writes its server-side record.
func (s *Store) issue(ctx context.Context, account *models.Account) (string, error) {
	tokenID := uuid.NewString()

	token, err := auth.GenerateJWT(account.ID, account.Role, tokenID, s.signingKey, s.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(tokenID), account.ID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session record: %w", err)
	}

	return token, nil
}

// profileFor loads the account's profile, creating it if the account
// predates profile materialisation.
func (s *Store) profileFor(ctx context.Context, account *models.Account) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, account.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	log.Printf("Materialising missing profile for account %s", account.ID)
	return s.users.CreateUser(ctx, account.ID, account.Email, "")
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}
