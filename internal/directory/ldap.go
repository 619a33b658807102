package directory

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog/log"

	"github.com/offering-catalog/catalog-api/internal/config"
)

const (
	defaultUserFilter    = "(mail={email})"
	defaultGroupFilter   = "(&({groupattr}={group})(member={userdn}))"
	defaultGroupNameAttr = "cn"
)

var (
	// ErrUserNotFound is returned when the user filter matches no entry.
	ErrUserNotFound = errors.New("user not found in directory")

	// ErrMultipleUsersFound is returned when the user filter matches more than one entry.
	ErrMultipleUsersFound = errors.New("multiple users found in directory")
)

// LDAPOracle searches an LDAP server for group membership.
// A user is a member when the group filter, with the user's DN and the group name
// filled in, matches at least one entry below GroupBaseDN.
type LDAPOracle struct {
	cfg     config.DirectoryLDAP
	timeout time.Duration
}

// NewLDAPOracle returns an oracle for the server described by cfg.
func NewLDAPOracle(cfg config.DirectoryLDAP, timeout time.Duration) *LDAPOracle {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if cfg.UserFilter == "" {
		cfg.UserFilter = defaultUserFilter
	}

	if cfg.GroupNameAttr == "" {
		cfg.GroupNameAttr = defaultGroupNameAttr
	}

	if cfg.GroupFilter == "" {
		cfg.GroupFilter = strings.ReplaceAll(defaultGroupFilter, "{groupattr}", cfg.GroupNameAttr)
	}

	if cfg.GroupBaseDN == "" {
		cfg.GroupBaseDN = cfg.BaseDN
	}

	return &LDAPOracle{cfg: cfg, timeout: timeout}
}

// IsMember implements Oracle.
func (o *LDAPOracle) IsMember(ctx context.Context, email, group string) bool {
	if email == "" || group == "" {
		return false
	}

	in, err := o.lookup(ctx, email, group)
	if err != nil {
		observeError(KindLDAP)
		log.Error().Err(err).Str("email", email).Str("group", group).Msg("ldap group membership lookup failed")

		return false
	}

	observe(KindLDAP, in)

	return in
}

func (o *LDAPOracle) lookup(ctx context.Context, email, group string) (bool, error) {
	conn, err := o.connect(ctx)
	if err != nil {
		return false, err
	}

	defer func() {
		if errClose := conn.Close(); errClose != nil {
			log.Warn().Err(errClose).Msg("failed to close LDAP connection")
		}
	}()

	if o.cfg.BindDN != "" {
		if err = conn.Bind(o.cfg.BindDN, o.cfg.BindPassword); err != nil {
			return false, fmt.Errorf("failed to bind with service account: %w", err)
		}
	}

	userDN, err := o.searchUserDN(conn, email)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	res, err := conn.Search(ldap.NewSearchRequest(
		o.cfg.GroupBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		1,
		o.timeLimit(),
		false,
		o.groupFilter(group, userDN),
		[]string{o.cfg.GroupNameAttr},
		nil,
	))
	if err != nil && !ldap.IsErrorWithCode(err, ldap.LDAPResultSizeLimitExceeded) {
		return false, fmt.Errorf("failed to search for group: %w", err)
	}

	return res != nil && len(res.Entries) > 0, nil
}

// connect dials the server, upgrading to TLS when configured.
func (o *LDAPOracle) connect(ctx context.Context) (*ldap.Conn, error) {
	hostPort := net.JoinHostPort(o.cfg.Host, strconv.Itoa(o.cfg.Port))

	scheme := "ldap://"
	if o.cfg.UseSSL {
		scheme = "ldaps://"
	}

	var tlsConfig *tls.Config
	if o.cfg.UseSSL || o.cfg.UseTLS {
		tlsConfig = &tls.Config{
			InsecureSkipVerify: o.cfg.SkipVerify, //nolint:gosec // opt in for lab directories
			ServerName:         o.cfg.Host,
		}
	}

	timeout := o.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}

	conn, err := ldap.DialURL(scheme+hostPort,
		ldap.DialWithTLSConfig(tlsConfig),
		ldap.DialWithDialer(&net.Dialer{Timeout: timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LDAP server: %w", err)
	}

	if !o.cfg.UseSSL && o.cfg.UseTLS {
		if errStartTLS := conn.StartTLS(tlsConfig); errStartTLS != nil {
			if errClose := conn.Close(); errClose != nil {
				log.Error().Err(errClose).Msg("failed to close LDAP connection")
			}

			return nil, fmt.Errorf("failed to start TLS: %w", errStartTLS)
		}
	}

	conn.SetTimeout(timeout)

	return conn, nil
}

func (o *LDAPOracle) searchUserDN(conn *ldap.Conn, email string) (string, error) {
	res, err := conn.Search(ldap.NewSearchRequest(
		o.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		o.timeLimit(),
		false,
		o.userFilter(email),
		[]string{"dn"},
		nil,
	))
	if err != nil {
		return "", fmt.Errorf("failed to search for user: %w", err)
	}

	switch len(res.Entries) {
	case 0:
		return "", ErrUserNotFound
	case 1:
		return res.Entries[0].DN, nil
	default:
		return "", ErrMultipleUsersFound
	}
}

func (o *LDAPOracle) userFilter(email string) string {
	return strings.ReplaceAll(o.cfg.UserFilter, "{email}", ldap.EscapeFilter(email))
}

func (o *LDAPOracle) groupFilter(group, userDN string) string {
	return strings.NewReplacer(
		"{group}", ldap.EscapeFilter(group),
		"{userdn}", ldap.EscapeFilter(userDN),
	).Replace(o.cfg.GroupFilter)
}

// timeLimit is the server side search limit in seconds.
func (o *LDAPOracle) timeLimit() int {
	return max(int(o.timeout/time.Second), 1)
}
