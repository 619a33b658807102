package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/config"
	"github.com/offering-catalog/catalog-api/internal/directory"
)

type recordingOracle struct {
	members map[string]string // email to group
	calls   []string
}

func (o *recordingOracle) IsMember(_ context.Context, email, group string) bool {
	o.calls = append(o.calls, group)
	return o.members[email] == group
}

func TestNewRoleSet(t *testing.T) {
	testCases := []struct {
		name     string
		roles    []Role
		expected []string
	}{
		{name: "empty", expected: []string{}},
		{name: "administrator implies solution architect", roles: []Role{RoleAdministrator}, expected: []string{"Administrator", "SolutionArchitect"}},
		{name: "solution architect", roles: []Role{RoleSolutionArchitect}, expected: []string{"SolutionArchitect"}},
		{name: "unknown ignored", roles: []Role{"Janitor"}, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rs := NewRoleSet(tc.roles...)
			assert.Equal(t, tc.expected, rs.Strings())
			assert.Equal(t, rs, ParseRoleSet(rs.Strings()))

			if rs.Has(RoleAdministrator) {
				assert.True(t, rs.Has(RoleSolutionArchitect))
			}
		})
	}
}

func TestResolve(t *testing.T) {
	oracle := &recordingOracle{members: map[string]string{
		"alice@example.com": "Administrators",
		"bob@example.com":   "Architects",
	}}
	r := NewResolver(oracle, "Administrators", "Architects")

	testCases := []struct {
		name          string
		email         string
		expectedAdmin bool
		expectedSA    bool
		expectedCalls []string
	}{
		{
			name:          "administrator short circuits",
			email:         "alice@example.com",
			expectedAdmin: true,
			expectedSA:    true,
			expectedCalls: []string{"Administrators"},
		},
		{
			name:          "solution architect",
			email:         "bob@example.com",
			expectedSA:    true,
			expectedCalls: []string{"Administrators", "Architects"},
		},
		{
			name:          "nobody",
			email:         "eve@example.com",
			expectedCalls: []string{"Administrators", "Architects"},
		},
		{
			name:  "empty email",
			email: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			oracle.calls = nil

			rs := r.Resolve(context.Background(), tc.email)
			assert.Equal(t, tc.expectedAdmin, rs.IsAdministrator())
			assert.Equal(t, tc.expectedSA, rs.IsSolutionArchitect())
			assert.Equal(t, tc.expectedCalls, oracle.calls)
		})
	}
}

func TestResolveFailsClosed(t *testing.T) {
	// an HTTP oracle pointing nowhere reports "not a member" for everyone
	oracle := directory.NewHTTPOracle("http://127.0.0.1:1/groups", 0)
	r := NewResolver(oracle, "Administrators", "Architects")

	rs := r.Resolve(context.Background(), "alice@example.com")
	assert.True(t, rs.Empty())
	assert.False(t, r.IsAdministrator(context.Background(), "alice@example.com"))
}

func TestResolveStaticDirectory(t *testing.T) {
	oracle, err := directory.New(config.Directory{
		Kind: directory.KindStatic,
		Static: config.DirectoryStatic{Members: []config.StaticMembers{
			{Group: "Administrators", Emails: []string{"alice@example.com"}},
		}},
	}, false)
	require.NoError(t, err)

	rs := NewResolver(oracle, "Administrators", "Architects").Resolve(context.Background(), "alice@example.com")
	assert.Equal(t, []string{"Administrator", "SolutionArchitect"}, rs.Strings())
}
