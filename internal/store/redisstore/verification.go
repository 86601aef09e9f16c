package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Verification code lifecycle errors, mapped to Turkish messages at the HTTP layer.
var (
	ErrCodeNotFound = errors.New("verification code not found")
	ErrCodeExpired  = errors.New("verification code expired")
	ErrCodeMismatch = errors.New("verification code mismatch")
)

// CodeTTL is how long a code stays usable. Confirming a code re-arms the
// window so registration has the same five minutes to complete.
const CodeTTL = 5 * time.Minute

// keyTTL garbage-collects abandoned entries; expiry decisions use ExpiresAt.
const keyTTL = time.Hour

type VerificationEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
}

func (e *VerificationEntry) expired() bool {
	return time.Now().After(e.ExpiresAt)
}

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func verificationKey(phone string) string {
	return "verify:" + phone
}

func (s *Store) put(ctx context.Context, phone string, e *VerificationEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, verificationKey(phone), b, keyTTL).Err()
}

func (s *Store) get(ctx context.Context, phone string) (*VerificationEntry, error) {
	b, err := s.rdb.Get(ctx, verificationKey(phone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	var e VerificationEntry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// PutCode stores a fresh code for the phone, overwriting any previous entry.
func (s *Store) PutCode(ctx context.Context, phone, code string) error {
	return s.put(ctx, phone, &VerificationEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(CodeTTL),
		Verified:  false,
	})
}

// ConfirmCode checks the submitted code against the stored entry.
// An expired entry is deleted as a side effect. A mismatched code keeps the
// entry so the user may retry. Re-confirming an already verified entry with
// the matching code succeeds again.
func (s *Store) ConfirmCode(ctx context.Context, phone, code string) error {
	e, err := s.get(ctx, phone)
	if err != nil {
		return err
	}
	if e.expired() {
		_ = s.Delete(ctx, phone)
		return ErrCodeExpired
	}
	if e.Code != code {
		return ErrCodeMismatch
	}
	e.Verified = true
	e.ExpiresAt = time.Now().Add(CodeTTL)
	return s.put(ctx, phone, e)
}

// IsVerified reports whether the phone holds a live verified entry.
func (s *Store) IsVerified(ctx context.Context, phone string) (bool, error) {
	e, err := s.get(ctx, phone)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return e.Verified && !e.expired(), nil
}

// Delete consumes the entry, e.g. after a successful registration.
func (s *Store) Delete(ctx context.Context, phone string) error {
	return s.rdb.Del(ctx, verificationKey(phone)).Err()
}
