package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// HMACStrategy implements auth token creation/verification using HMAC signatures.
// Token layout before base64: "<user id>:<role>:<unix expiry>:<signature>".
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	return &HMACStrategy{secret: []byte(secret), ttl: opts.ttl()}
}

// IssueToken generates signed auth token for the actor.
func (s *HMACStrategy) IssueToken(actor model.Actor) (string, error) {
	if actor.UserID == "" || strings.Contains(actor.UserID, ":") || !actor.Role.Valid() {
		return "", ErrInvalidToken
	}
	expires := time.Now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%s:%d", actor.UserID, actor.Role, expires)
	token := fmt.Sprintf("%s:%s", payload, s.sign(payload))
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates token and returns the encoded actor.
func (s *HMACStrategy) ParseToken(token string) (model.Actor, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return model.Actor{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return model.Actor{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return model.Actor{}, ErrInvalidToken
	}

	actor := model.Actor{UserID: parts[0], Role: model.Role(parts[1])}
	if actor.UserID == "" || !actor.Role.Valid() {
		return model.Actor{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return model.Actor{}, ErrInvalidToken
	}
	if time.Unix(expires, 0).Before(time.Now()) {
		return model.Actor{}, ErrInvalidToken
	}

	return actor, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
