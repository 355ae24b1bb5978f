package config

import (
	"net"
	"net/url"
	"strconv"
)

// DSN builds the postgres URL for the configured database. User and
// password are escaped, so passwords containing ':' or '@' are safe.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
