package fetch

import (
	"net/http"
)

// Modifier modifies the request before it is sent.
type Modifier interface {
	Modify(*http.Request) error
}

// ModifierFunc adapts a plain function to Modifier.
type ModifierFunc func(*http.Request) error

// Modify calls f(req).
func (f ModifierFunc) Modify(req *http.Request) error {
	return f(req)
}

// NewBasicAuthorizer returns a modifier that sets HTTP basic credentials.
// An empty username leaves the request anonymous.
func NewBasicAuthorizer(username, password string) Modifier {
	return &basicAuthorizer{username: username, password: password}
}

type basicAuthorizer struct {
	username string
	password string
}

func (a *basicAuthorizer) Modify(req *http.Request) error {
	if a.username == "" {
		return nil
	}
	req.SetBasicAuth(a.username, a.password)
	return nil
}

// NewHeaderModifier sets a fixed header on every request.
func NewHeaderModifier(key, value string) Modifier {
	return ModifierFunc(func(req *http.Request) error {
		req.Header.Set(key, value)
		return nil
	})
}
