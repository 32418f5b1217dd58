package arcgis

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const tokenHint = "No token generated with the username and password provided."

type tokenResponse struct {
	Token string `json:"token"`
}

// GenerateToken exchanges the connection's credentials for a token and
// stores it on the connection. Every failure, including a login page
// returned in place of a token, is reported as ErrNoToken.
func (c *Client) GenerateToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("username", c.conn.User)
	form.Set("password", c.conn.Password)
	form.Set("client", "requestip")

	body, err := c.post(ctx, "generateToken", nil, form)
	if err != nil {
		c.log.Error("token exchange failed", zap.String("server", c.conn.Server), zap.Error(err))
		return "", noToken(err)
	}

	token, err := parseToken(body)
	if err != nil {
		c.log.Error("token exchange rejected", zap.String("server", c.conn.Server), zap.Error(err))
		return "", noToken(err)
	}

	c.conn.Token = token
	return token, nil
}

func noToken(cause error) error {
	err := errors.Mark(errors.Wrap(cause, "could not connect to server"), ErrNoToken)
	return errors.WithHint(err, tokenHint)
}

// parseToken accepts either the raw token text or a JSON {"token": ...} body.
func parseToken(body []byte) (string, error) {
	text := strings.TrimSpace(string(body))
	if strings.Contains(text, "<html>") {
		return "", errors.New("server returned an HTML page instead of a token")
	}
	if text == "" {
		return "", errors.New("server returned an empty token")
	}
	if bytes.HasPrefix([]byte(text), []byte("{")) {
		if err := checkEnvelope(body); err != nil {
			return "", err
		}
		var resp tokenResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", errors.Wrap(err, "failed to parse token response")
		}
		if resp.Token == "" {
			return "", errors.New("token response has no token")
		}
		return resp.Token, nil
	}
	return text, nil
}
