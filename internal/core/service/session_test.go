package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/helpdesk-hq/helpdesk-api/internal/core/domain"
)

func TestSessionManager_IssueVerify(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)

	session, err := m.Issue("agent-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if time.Until(session.ExpiresAt) <= 59*time.Minute {
		t.Fatalf("unexpected expiry: %v", session.ExpiresAt)
	}

	id, err := m.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != "agent-1" {
		t.Fatalf("expected agent-1, got %q", id)
	}
}

func TestSessionManager_DefaultTTL(t *testing.T) {
	m := NewSessionManager("secret", 0)
	if m.ttl != DefaultSessionTTL {
		t.Fatalf("expected default ttl %v, got %v", DefaultSessionTTL, m.ttl)
	}
}

func TestSessionManager_Expired(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	session, err := m.Issue("agent-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(session.Token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionManager_WrongKey(t *testing.T) {
	issuer := NewSessionManager("secret", time.Hour)
	verifier := NewSessionManager("other-secret", time.Hour)

	session, err := issuer.Issue("agent-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(session.Token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionManager_RejectsGarbageAndOtherAlgorithms(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)

	if _, err := m.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("garbage: expected ErrInvalidToken, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "agent-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := m.Verify(unsigned); err != domain.ErrInvalidToken {
		t.Fatalf("alg none: expected ErrInvalidToken, got %v", err)
	}

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "agent-1"})
	signed, err := noExpiry.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("missing exp: expected ErrInvalidToken, got %v", err)
	}
}
