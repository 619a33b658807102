package config

import (
	"time"

	"github.com/offering-catalog/catalog-api/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration // lifetime of an authenticated session
	SameSite   string        // SameSite attribute of the session cookie
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Directory Directory
	Frontend  Frontend
	Log       logger.Log
	OIDC      OIDC
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover      bool    // disable recover middleware
	Port                int     // listening port for the webserver
	ShutDownTime        int     // wait time for shutdown
	URL                 string  // base url for the webserver
	APIPrefix           string  // route prefix of the JSON API
	CookieEncryptionKey string  // base64 encoded 32 byte key for cookie encryption
	Session             Session // session settings
}

// Frontend describes the single page application that consumes the API.
type Frontend struct {
	URL         string // origin of the frontend, used for CORS and redirects
	LandingPath string // redirect target after a successful login
	LoginPath   string // login retry page, receives ?error=...
	LogoutURL   string // returned by logout when the identity provider has no end session endpoint
}

// OIDC holds the OpenID Connect client settings.
type OIDC struct {
	DiscoveryURL string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Directory selects and configures the group membership oracle.
type Directory struct {
	Kind                   string // http, ldap or static
	AdminGroup             string
	SolutionArchitectGroup string
	Timeout                time.Duration
	HTTP                   DirectoryHTTP
	LDAP                   DirectoryLDAP
	Static                 DirectoryStatic
}

// DirectoryHTTP is the XML group lookup web service.
type DirectoryHTTP struct {
	URL string
}

// DirectoryLDAP is an LDAP server answering group membership queries.
type DirectoryLDAP struct {
	Host          string
	Port          int
	UseSSL        bool
	UseTLS        bool
	SkipVerify    bool
	BindDN        string
	BindPassword  string
	BaseDN        string
	UserFilter    string // {email} is replaced with the escaped email
	GroupBaseDN   string
	GroupFilter   string // {group} and {userdn} are replaced
	GroupNameAttr string
}

// DirectoryStatic is a fixed membership table, used for development and tests.
type DirectoryStatic struct {
	AllowAll bool // every user is member of every group, dev mode only
	Members  []StaticMembers
}

// StaticMembers lists the emails belonging to one group.
type StaticMembers struct {
	Group  string
	Emails []string
}
