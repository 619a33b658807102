// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of environment variables overriding single config keys,
	// e.g. CATALOG_OIDC_CLIENTSECRET or CATALOG_DB_URL.
	EnvPrefix = "CATALOG"

	// EnvConfigJSON holds a JSON document merged over the file based config.
	EnvConfigJSON = "CATALOG_CONFIG_JSON"

	cookieKeyLength = 32
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, "main.toml"))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

// setDefaults registers every key that may be set by environment only.
// viper ignores env variables for keys it has never seen.
func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "Offering Catalog API")
	v.SetDefault("devmode", false)

	v.SetDefault("webserver.port", 8000)
	v.SetDefault("webserver.url", "http://localhost:8000")
	v.SetDefault("webserver.apiprefix", "/api/v1")
	v.SetDefault("webserver.shutdowntime", 5)
	v.SetDefault("webserver.cookieencryptionkey", "")
	v.SetDefault("webserver.session.expirytime", time.Hour)
	v.SetDefault("webserver.session.samesite", "Lax")

	v.SetDefault("frontend.url", "http://localhost:3000")
	v.SetDefault("frontend.landingpath", "/catalog")
	v.SetDefault("frontend.loginpath", "/login")
	v.SetDefault("frontend.logouturl", "")

	v.SetDefault("oidc.discoveryurl", "")
	v.SetDefault("oidc.clientid", "")
	v.SetDefault("oidc.clientsecret", "")
	v.SetDefault("oidc.redirecturl", "")
	v.SetDefault("oidc.scopes", []string{"openid", "profile", "email"})

	v.SetDefault("directory.kind", "http")
	v.SetDefault("directory.admingroup", "")
	v.SetDefault("directory.solutionarchitectgroup", "")
	v.SetDefault("directory.timeout", 10*time.Second)
	v.SetDefault("directory.http.url", "https://bluepages.ibm.com/tools/groups/groupsxml.wss")
	v.SetDefault("directory.ldap.bindpassword", "")

	v.SetDefault("db.url", "")
	v.SetDefault("db.gormengine", "postgres")
	v.SetDefault("db.password", "")
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without
// and fills in defaults for optional ones.
func validate(c *Config) error {
	// validate webserver listening port
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	// validate access-control-allow-origin
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.APIPrefix == "" {
		c.Webserver.APIPrefix = "/api/v1"
	}

	if c.Webserver.Session.ExpiryTime <= 0 {
		c.Webserver.Session.ExpiryTime = time.Hour
	}

	if c.Webserver.Session.SameSite == "" {
		c.Webserver.Session.SameSite = "Lax"
	}

	if c.Webserver.CookieEncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.Webserver.CookieEncryptionKey)
		if err != nil || len(key) != cookieKeyLength {
			return errors.Wrap(ErrInvalidCookieKey, invalidErrMessage)
		}
	}

	if c.Frontend.URL == "" {
		return errors.Wrap(ErrEmptyFrontendURL, invalidErrMessage)
	}

	c.Frontend.URL = strings.TrimRight(c.Frontend.URL, "/")

	if c.Frontend.LandingPath == "" {
		c.Frontend.LandingPath = "/catalog"
	}

	if c.Frontend.LoginPath == "" {
		c.Frontend.LoginPath = "/login"
	}

	switch c.Directory.Kind {
	case "http", "ldap", "static":
	default:
		return errors.Wrap(ErrUnknownDirectoryKind, invalidErrMessage)
	}

	if c.Directory.AdminGroup == "" || c.Directory.SolutionArchitectGroup == "" {
		return errors.Wrap(ErrEmptyGroup, invalidErrMessage)
	}

	if c.Directory.Timeout <= 0 {
		c.Directory.Timeout = 10 * time.Second
	}

	switch c.DB.GormEngine {
	case "postgres", "mysql", "sqlite":
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	return nil
}
