package domain

import "testing"

func TestRoleCapabilities(t *testing.T) {
	cases := []struct {
		role     Role
		valid    bool
		moderate bool
		bypass   bool
	}{
		{RoleUser, true, false, false},
		{RoleModerator, true, true, false},
		{RoleAdmin, true, true, true},
		{Role("superuser"), false, false, false},
		{Role(""), false, false, false},
	}
	for _, c := range cases {
		if got := c.role.Valid(); got != c.valid {
			t.Errorf("%q.Valid() = %v, want %v", c.role, got, c.valid)
		}
		if got := c.role.CanModerate(); got != c.moderate {
			t.Errorf("%q.CanModerate() = %v, want %v", c.role, got, c.moderate)
		}
		if got := c.role.BypassesOwnership(); got != c.bypass {
			t.Errorf("%q.BypassesOwnership() = %v, want %v", c.role, got, c.bypass)
		}
	}
}

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name          string
		author, actor string
		role          Role
		want          bool
	}{
		{"author-self", "a", "a", RoleUser, true},
		{"other-user", "a", "b", RoleUser, false},
		{"moderator-not-owner", "a", "b", RoleModerator, false},
		{"admin-not-owner", "a", "b", RoleAdmin, true},
	}
	for _, c := range cases {
		if got := CanMutate(c.author, c.actor, c.role); got != c.want {
			t.Errorf("%s: CanMutate = %v, want %v", c.name, got, c.want)
		}
	}
}
