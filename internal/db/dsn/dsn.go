// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/offering-catalog/catalog-api/internal/config"
)

const foreignKeysPragma = "_pragma=foreign_keys(1)"

// Create builds the Data Source Name for the configured gorm engine.
// A non empty DB.URL is returned unchanged, sqlite URLs get the foreign key pragma added.
func Create(dbCfg *config.Config) string {
	db := dbCfg.DB

	if db.URL != "" {
		if db.GormEngine == "sqlite" {
			return withForeignKeys(db.URL)
		}

		return db.URL
	}

	switch db.GormEngine {
	case "postgres":
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)

		if db.Extras != "" {
			out += " " + strings.ReplaceAll(db.Extras, "&", " ")
		}

		return out
	case "sqlite":
		return sqlite(db.Name)
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	}
}

// SessionURI builds the connection string of the session storage.
// The postgres storage expects a URL, the mysql storage the driver DSN.
func SessionURI(dbCfg *config.Config) string {
	db := dbCfg.DB

	if db.URL != "" || db.GormEngine != "postgres" {
		return Create(dbCfg)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}

// sqlite returns a DSN with foreign keys enabled, an empty name opens a private in memory database.
func sqlite(name string) string {
	if name == "" {
		name = ":memory:"
	}

	return "file:" + name + "?" + foreignKeysPragma
}

// withForeignKeys appends the foreign key pragma unless the DSN sets it already.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}

	if strings.Contains(dsn, "?") {
		return dsn + "&" + foreignKeysPragma
	}

	return dsn + "?" + foreignKeysPragma
}
