package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies tokens carrying the actor identity and role.
type Strategy interface {
	IssueToken(actor model.Actor) (string, error)
	ParseToken(token string) (model.Actor, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return 24 * time.Hour
	}
	return o.TTL
}
