// Package main provides the entry point of the offering catalog service.
// It reads etc/main.toml, connects the database, the group directory and the
// OpenID Connect provider and serves the catalog JSON API with fiber.
package main
