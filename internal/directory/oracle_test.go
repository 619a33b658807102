package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/config"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name          string
		cfg           config.Directory
		devMode       bool
		expectedType  any
		expectedError error
	}{
		{
			name:         "http",
			cfg:          config.Directory{Kind: KindHTTP, HTTP: config.DirectoryHTTP{URL: "http://localhost"}, Timeout: time.Second},
			expectedType: &HTTPOracle{},
		},
		{
			name:         "ldap",
			cfg:          config.Directory{Kind: KindLDAP},
			expectedType: &LDAPOracle{},
		},
		{
			name:         "static",
			cfg:          config.Directory{Kind: KindStatic},
			expectedType: &StaticOracle{},
		},
		{
			name:          "allow all outside dev mode",
			cfg:           config.Directory{Kind: KindStatic, Static: config.DirectoryStatic{AllowAll: true}},
			expectedError: ErrAllowAllRequiresDevMode,
		},
		{
			name:         "allow all in dev mode",
			cfg:          config.Directory{Kind: KindStatic, Static: config.DirectoryStatic{AllowAll: true}},
			devMode:      true,
			expectedType: &StaticOracle{},
		},
		{
			name:          "unknown",
			cfg:           config.Directory{Kind: "carrier-pigeon"},
			expectedError: ErrUnknownKind,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := New(tc.cfg, tc.devMode)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, o)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, tc.expectedType, o)
		})
	}
}

func TestOracleFunc(t *testing.T) {
	var o Oracle = OracleFunc(func(_ context.Context, email, group string) bool {
		return email == "alice@example.com" && group == "Administrators"
	})

	assert.True(t, o.IsMember(context.Background(), "alice@example.com", "Administrators"))
	assert.False(t, o.IsMember(context.Background(), "bob@example.com", "Administrators"))
}
