package source

import (
	"fmt"
	"strings"
)

// Location is a resolved database location: a database/sql driver name plus its DSN.
type Location struct {
	Raw    string
	Driver string
	DSN    string
}

// String returns the location as configured, with any password masked.
func (l Location) String() string {
	return maskPassword(l.Raw)
}

// ParseLocation resolves a configured location into a driver and DSN.
//
// URL-style locations pick the driver from the scheme. Anything without a scheme is
// treated as a SQLite file path. driver, when non-empty, overrides detection and the
// location is passed to it verbatim.
func ParseLocation(raw, driver string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("empty database location")
	}
	if driver != "" {
		return Location{Raw: raw, Driver: normalizeDriver(driver), DSN: raw}, nil
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Location{Raw: raw, Driver: "sqlite", DSN: raw}, nil
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		// lib/pq accepts the URL form as-is
		return Location{Raw: raw, Driver: "postgres", DSN: raw}, nil
	case "sqlserver", "mssql":
		return Location{Raw: raw, Driver: "sqlserver", DSN: "sqlserver://" + rest}, nil
	case "oracle":
		return Location{Raw: raw, Driver: "oracle", DSN: raw}, nil
	case "mysql":
		// go-sql-driver expects user:pass@tcp(host:port)/db, not a URL
		return Location{Raw: raw, Driver: "mysql", DSN: rest}, nil
	case "sqlite", "sqlite3", "file":
		return Location{Raw: raw, Driver: "sqlite", DSN: rest}, nil
	default:
		return Location{}, fmt.Errorf("unsupported database scheme %q in %q", scheme, maskPassword(raw))
	}
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(driver) {
	case "postgresql", "pgsql":
		return "postgres"
	case "mssql":
		return "sqlserver"
	case "sqlite3":
		return "sqlite"
	default:
		return strings.ToLower(driver)
	}
}

// maskPassword hides the password part of user:password@ in URL-like strings.
func maskPassword(s string) string {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return s
	}
	start := strings.Index(s, "://")
	if start >= 0 {
		start += 3
	} else {
		start = 0
	}
	colon := strings.Index(s[start:at], ":")
	if colon < 0 {
		return s
	}
	return s[:start+colon+1] + "****" + s[at:]
}
