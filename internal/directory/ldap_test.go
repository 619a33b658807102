package directory

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offering-catalog/catalog-api/internal/config"
)

func TestLDAPOracleDefaults(t *testing.T) {
	o := NewLDAPOracle(config.DirectoryLDAP{BaseDN: "dc=example,dc=com"}, 0)

	assert.Equal(t, DefaultTimeout, o.timeout)
	assert.Equal(t, "dc=example,dc=com", o.cfg.GroupBaseDN)
	assert.Equal(t, "(mail=alice@example.com)", o.userFilter("alice@example.com"))
	assert.Equal(t,
		`(&(cn=Admins \28EU\29)(member=uid=alice,dc=example,dc=com))`,
		o.groupFilter("Admins (EU)", "uid=alice,dc=example,dc=com"),
	)
	assert.Equal(t, 10, o.timeLimit())
}

func TestLDAPOracleEscapesFilter(t *testing.T) {
	o := NewLDAPOracle(config.DirectoryLDAP{UserFilter: "(&(objectClass=person)(mail={email}))"}, time.Second)

	assert.Equal(t, `(&(objectClass=person)(mail=\2a\29\28uid=\2a))`, o.userFilter("*)(uid=*"))
}

func TestLDAPOracleUnreachable(t *testing.T) {
	// grab a free port and release it again so nothing listens there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	o := NewLDAPOracle(config.DirectoryLDAP{Host: "127.0.0.1", Port: port, BaseDN: "dc=example,dc=com"}, time.Second)

	assert.False(t, o.IsMember(context.Background(), "alice@example.com", "Administrators"))
}
