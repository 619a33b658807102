package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrInvalidCookieKey error if webserver.cookieEncryptionKey is not a base64 encoded 32 byte key.
	ErrInvalidCookieKey = errors.New("toml config webserver.cookieEncryptionKey must be a base64 encoded 32 byte key")

	// ErrEmptyFrontendURL error if frontend.url is empty.
	ErrEmptyFrontendURL = errors.New("toml config frontend.url can not be empty")

	// ErrEmptyGroup error if one of the directory group names is empty.
	ErrEmptyGroup = errors.New("toml config directory.adminGroup and directory.solutionArchitectGroup can not be empty")

	// ErrUnknownDirectoryKind error if directory.kind is not supported.
	ErrUnknownDirectoryKind = errors.New("toml config directory.kind must be one of http, ldap, static")

	// ErrUnknownGormEngine error if db.gormEngine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be one of postgres, mysql, sqlite")
)
