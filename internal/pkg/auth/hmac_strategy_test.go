package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

var customer = model.Actor{UserID: "9b2f6f3e-1c7a-4d51-9a7e-2f4d1d0c5e11", Role: model.RoleCustomer}

func TestNewHMACStrategy_DefaultTTL(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy == nil {
		t.Fatal("expected strategy instance")
	}
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestNewHMACStrategy_CustomTTL(t *testing.T) {
	ttl := 2 * time.Hour
	strategy := NewHMACStrategy("secret", Options{TTL: ttl})
	if strategy.ttl != ttl {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestHMACStrategy_IssueAndParse(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	for _, actor := range []model.Actor{customer, {UserID: "admin-1", Role: model.RoleAdmin}} {
		token, err := strategy.IssueToken(actor)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		got, err := strategy.ParseToken(token)
		if err != nil {
			t.Fatalf("parse token: %v", err)
		}
		if got != actor {
			t.Fatalf("unexpected actor: %+v", got)
		}
	}
}

func TestHMACStrategy_IssueRejectsBadActor(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	for _, actor := range []model.Actor{{Role: model.RoleAdmin}, {UserID: "a:b", Role: model.RoleAdmin}, {UserID: "u1", Role: "root"}} {
		if _, err := strategy.IssueToken(actor); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %+v, got %v", actor, err)
		}
	}
}

func TestHMACStrategy_ParseInvalidBase64(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.ParseToken("not-base64"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseInvalidParts(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	token := base64.StdEncoding.EncodeToString([]byte("only:two"))
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseInvalidSignature(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(customer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		t.Fatalf("unexpected parts count: %d", len(parts))
	}
	parts[3] = "tampered"
	tamperedToken := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ":")))
	if _, err := strategy.ParseToken(tamperedToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseEscalatedRole(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(customer)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	raw, _ := base64.StdEncoding.DecodeString(token)
	forged := strings.Replace(string(raw), ":customer:", ":admin:", 1)
	if _, err := strategy.ParseToken(base64.StdEncoding.EncodeToString([]byte(forged))); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseInvalidRole(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	payload := fmt.Sprintf("u1:root:%d", time.Now().Add(time.Minute).Unix())
	token := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", payload, strategy.sign(payload))))
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseInvalidExpiry(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	payload := "u1:customer:not-a-number"
	token := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", payload, strategy.sign(payload))))
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_ParseExpired(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	payload := fmt.Sprintf("u1:customer:%d", time.Now().Add(-time.Minute).Unix())
	token := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", payload, strategy.sign(payload))))
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategy_Name(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if strategy.Name() != "hmac" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}
