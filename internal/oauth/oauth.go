// Package oauth implements NetSuite token-based authentication: OAuth 1.0
// request signing with HMAC-SHA256 per RFC 5849, scoped to an account via
// the realm parameter.
package oauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SignatureMethod identifies the signing algorithm NetSuite expects.
const SignatureMethod = "HMAC-SHA256"

// Credentials holds the token-based authentication tuple for one account.
// All five fields are required and never change after construction.
type Credentials struct {
	AccountID      string
	ConsumerKey    string
	ConsumerSecret string
	TokenKey       string
	TokenSecret    string
}

// MissingField returns the name of the first empty credential field, or ""
// when the tuple is complete.
func (c Credentials) MissingField() string {
	switch {
	case c.AccountID == "":
		return "account_id"
	case c.ConsumerKey == "":
		return "consumer_key"
	case c.ConsumerSecret == "":
		return "consumer_secret"
	case c.TokenKey == "":
		return "token_key"
	case c.TokenSecret == "":
		return "token_secret"
	}
	return ""
}

// Signer computes Authorization header values for outbound requests.
//
// Now and Nonce are the timestamp and nonce sources. Each request draws a
// fresh pair; signatures are never cached or reused.
type Signer struct {
	Credentials Credentials
	Now         func() time.Time
	Nonce       func() string
}

// NewSigner returns a Signer using the wall clock and random nonces.
func NewSigner(creds Credentials) *Signer {
	return &Signer{
		Credentials: creds,
		Now:         time.Now,
		Nonce:       NewNonce,
	}
}

// NewNonce returns a random 32-character hex nonce.
func NewNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Header computes the OAuth Authorization header value for one request.
// The signature covers the uppercased method, the URL stripped of its query
// and fragment, and the normalized OAuth plus URL query parameters. The
// request body is never part of the signature; NetSuite validates only the
// method, URL and parameters.
func (s *Signer) Header(method, rawURL string) (string, error) {
	timestamp := strconv.FormatInt(s.Now().Unix(), 10)
	return s.header(method, rawURL, timestamp, s.Nonce())
}

func (s *Signer) header(method, rawURL, timestamp, nonce string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing request URL: %w", err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("request URL %q is not absolute", rawURL)
	}

	c := s.Credentials
	params := [][2]string{
		{"oauth_consumer_key", c.ConsumerKey},
		{"oauth_nonce", nonce},
		{"oauth_signature_method", SignatureMethod},
		{"oauth_timestamp", timestamp},
		{"oauth_token", c.TokenKey},
		{"oauth_version", "1.0"},
	}
	for key, values := range u.Query() {
		for _, value := range values {
			params = append(params, [2]string{key, value})
		}
	}

	base := baseString(method, u, params)
	signature := sign(base, c.ConsumerSecret, c.TokenSecret)

	var b strings.Builder
	b.WriteString(`OAuth realm="`)
	b.WriteString(c.AccountID)
	b.WriteString(`",oauth_consumer_key="`)
	b.WriteString(c.ConsumerKey)
	b.WriteString(`",oauth_token="`)
	b.WriteString(c.TokenKey)
	b.WriteString(`",oauth_signature_method="`)
	b.WriteString(SignatureMethod)
	b.WriteString(`",oauth_timestamp="`)
	b.WriteString(timestamp)
	b.WriteString(`",oauth_nonce="`)
	b.WriteString(nonce)
	b.WriteString(`",oauth_version="1.0",oauth_signature="`)
	b.WriteString(PercentEncode(signature))
	b.WriteString(`"`)
	return b.String(), nil
}

// baseString builds the RFC 5849 section 3.4.1 signature base string: the
// uppercased method, the URL without query or fragment, and the normalized
// parameter string, each percent-encoded and joined with ampersands.
func baseString(method string, u *url.URL, params [][2]string) string {
	encoded := make([][2]string, len(params))
	for i, p := range params {
		encoded[i] = [2]string{PercentEncode(p[0]), PercentEncode(p[1])}
	}
	// ascending byte order by name, then by value for identical names
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i][0] != encoded[j][0] {
			return encoded[i][0] < encoded[j][0]
		}
		return encoded[i][1] < encoded[j][1]
	})

	pairs := make([]string, len(encoded))
	for i, p := range encoded {
		pairs[i] = p[0] + "=" + p[1]
	}
	normalized := strings.Join(pairs, "&")

	baseURL := u.Scheme + "://" + u.Host + u.EscapedPath()
	return strings.ToUpper(method) + "&" + PercentEncode(baseURL) + "&" + PercentEncode(normalized)
}

// sign computes the base64-encoded HMAC-SHA256 digest of text. The key is
// the percent-encoded consumer secret and token secret joined by an
// ampersand (RFC 5849 section 3.4.2).
func sign(text, consumerSecret, tokenSecret string) string {
	key := PercentEncode(consumerSecret) + "&" + PercentEncode(tokenSecret)
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(text))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// PercentEncode escapes s per RFC 5849 section 3.6: every byte outside the
// unreserved set becomes %XX with uppercase hex digits. A space is %20, not
// a plus sign.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}
