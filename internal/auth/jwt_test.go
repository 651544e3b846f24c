package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap-ke/skillswap-backend/internal/domain"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func testManager(ttl time.Duration) *JWTManager {
	return NewJWTManager(testSecret, "skillswap-test", ttl)
}

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := testManager(15 * time.Minute)
	profileID := uuid.New()

	token, err := manager.GenerateAccessToken(profileID, domain.UserRoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	validatedID, role, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if validatedID != profileID {
		t.Errorf("expected profileID %s, got %s", profileID, validatedID)
	}
	if role != domain.UserRoleUser {
		t.Errorf("expected role user, got %q", role)
	}
}

func TestJWTManager_ModeratorRole(t *testing.T) {
	manager := testManager(15 * time.Minute)

	token, err := manager.GenerateAccessToken(uuid.New(), domain.UserRoleModerator)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, role, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if !role.CanModerate() {
		t.Errorf("expected a moderating role, got %q", role)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	manager := testManager(-1 * time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), domain.UserRoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, _, err = manager.ValidateAccessToken(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestJWTManager_InvalidSignature(t *testing.T) {
	manager1 := testManager(15 * time.Minute)
	manager2 := NewJWTManager("different-secret-32-chars-long-for-security!!", "skillswap-test", 15*time.Minute)

	token, err := manager1.GenerateAccessToken(uuid.New(), domain.UserRoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, _, err := manager2.ValidateAccessToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for bad signature, got %v", err)
	}
}

func TestJWTManager_WrongIssuer(t *testing.T) {
	manager1 := testManager(15 * time.Minute)
	manager2 := NewJWTManager(testSecret, "someone-else", 15*time.Minute)

	token, err := manager1.GenerateAccessToken(uuid.New(), domain.UserRoleUser)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, _, err := manager2.ValidateAccessToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong issuer, got %v", err)
	}
}

func TestJWTManager_Malformed(t *testing.T) {
	manager := testManager(15 * time.Minute)

	for _, token := range []string{"", "not.a.jwt", "invalid-token", "header.payload"} {
		if _, _, err := manager.ValidateAccessToken(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("token %q: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestJWTManager_UnknownRoleRejected(t *testing.T) {
	manager := testManager(15 * time.Minute)

	token, err := manager.GenerateAccessToken(uuid.New(), domain.UserRole("superuser"))
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, _, err := manager.ValidateAccessToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown role, got %v", err)
	}
}
