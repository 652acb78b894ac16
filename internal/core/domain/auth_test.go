package domain

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	active := &Session{ExpiresAt: time.Now().Add(time.Hour)}
	if active.IsExpired() {
		t.Error("expected session to be active")
	}

	expired := &Session{ExpiresAt: time.Now().Add(-time.Hour)}
	if !expired.IsExpired() {
		t.Error("expected session to be expired")
	}
}

func TestAuthContextIsAdmin(t *testing.T) {
	admin := &AuthContext{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("expected admin context")
	}

	member := &AuthContext{Role: RoleMember}
	if member.IsAdmin() {
		t.Error("expected non-admin context")
	}
}

func TestUserToSummary(t *testing.T) {
	u := &User{
		ID:           "user-1",
		Email:        "writer@example.com",
		PasswordHash: "secret-hash",
		Name:         "Writer",
		Role:         RoleMember,
		Active:       true,
	}

	s := u.ToSummary()
	if s.ID != u.ID || s.Email != u.Email || s.Name != u.Name || s.Role != u.Role {
		t.Errorf("summary fields do not match user: %+v", s)
	}
	if !s.Active {
		t.Error("expected active summary")
	}
}

func TestUserPermissions(t *testing.T) {
	admin := &User{Role: RoleAdmin, Active: true}
	if !admin.IsAdmin() || !admin.CanManageUsers() || !admin.CanAnalyse() {
		t.Error("admin should have all permissions")
	}

	member := &User{Role: RoleMember, Active: true}
	if member.IsAdmin() || member.CanManageUsers() {
		t.Error("member should not manage users")
	}
	if !member.CanAnalyse() {
		t.Error("active member should analyse")
	}

	disabled := &User{Role: RoleMember, Active: false}
	if disabled.CanAnalyse() {
		t.Error("disabled user should not analyse")
	}
}
