// Package urlnorm canonicalizes user-supplied links to a deterministic https
// form. Canonicalization is idempotent: feeding the output back in yields a
// byte-identical string, so repeated profile submissions store identical
// values.
package urlnorm

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Canonicalize normalizes raw into canonical https form:
//   - bare domains get an https scheme, http is upgraded to https
//   - scheme and host are lowercased
//   - default ports (80, 443) are stripped
//   - a leading "www." is stripped
//   - a single trailing slash is stripped
//   - query parameters are sorted by key
//
// An empty input canonicalizes to the empty string.
func Canonicalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "http" {
		scheme = "https"
	}
	if scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", fmt.Errorf("url %q has no host", raw)
	}
	if port := u.Port(); port != "" && port != "80" && port != "443" {
		host = host + ":" + port
	}

	path := strings.TrimSuffix(u.EscapedPath(), "/")

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(path)
	if q := sortedQuery(u.Query()); q != "" {
		b.WriteString("?")
		b.WriteString(q)
	}
	if u.Fragment != "" {
		b.WriteString("#")
		b.WriteString(u.Fragment)
	}
	return b.String(), nil
}

func sortedQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		for _, v := range values[k] {
			parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
		}
	}
	return strings.Join(parts, "&")
}
