package arcgis

import (
	"fmt"
	"net/url"
	"strings"
)

// Connection describes how to reach one server's administrative API.
// Token stays empty until GenerateToken succeeds.
type Connection struct {
	Scheme   string
	Server   string
	Port     string
	Instance string
	User     string
	Password string
	Token    string
}

// BaseURL returns {scheme}://{server}:{port}/{instance}
func (c *Connection) BaseURL() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	host := c.Server
	if c.Port != "" {
		host = fmt.Sprintf("%s:%s", c.Server, c.Port)
	}
	u := url.URL{
		Scheme: scheme,
		Host:   host,
		Path:   "/" + strings.Trim(c.Instance, "/"),
	}
	return u.String()
}

// AdminURL joins an admin-relative path onto the base URL.
func (c *Connection) AdminURL(path string) string {
	return c.BaseURL() + "/admin/" + strings.TrimPrefix(path, "/")
}

// HasToken reports whether a token exchange has completed.
func (c *Connection) HasToken() bool {
	return c.Token != ""
}
