// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package e2e

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// sessionClient talks to the service through virtual tenant hosts, the
// Host header picks the tenant while the connection goes to the test server
type sessionClient struct {
	t      *testing.T
	http   *http.Client
	server *url.URL
}

func newSessionClient(t *testing.T) *sessionClient {
	server, err := url.Parse(baseURL())
	require.NoError(t, err)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &sessionClient{
		t:      t,
		http:   &http.Client{Jar: jar, Timeout: 10 * time.Second},
		server: server,
	}
}

// do sends the request to host, cookies are kept for the service origin
// regardless of the tenant host used
func (c *sessionClient) do(method, host, path, body string) (int, string) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, c.server.JoinPath(path).String(), r)
	require.NoError(c.t, err)

	req.Host = host
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	return resp.StatusCode, string(b)
}

func (c *sessionClient) login(username, password string) {
	status, body := c.do(http.MethodPost, "login."+baseDomain, "/api/auth/login", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(c.t, http.StatusOK, status, body)
}

func tenantHost(subdomain string) string {
	return subdomain + "." + baseDomain
}
