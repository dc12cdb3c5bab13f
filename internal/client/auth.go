package client

import (
	"context"

	"visitor-cli/internal/session"
	"visitor-cli/pkg/models"
)

// Login authenticates an admin and stores the returned token and profile.
func (c *VisitorClient) Login(ctx context.Context, email, password string) (session.Session, error) {
	var result models.LoginResponse

	resp, err := c.request(ctx).
		SetBody(models.LoginPayload{Email: email, Password: password}).
		SetResult(&result).
		Post("/api/login/")
	if err := check(resp, err); err != nil {
		return session.Session{}, err
	}

	token := result.SessionToken()
	if token == "" {
		return session.Session{}, &Error{Kind: KindBackend, Status: resp.StatusCode(), Message: "Login succeeded but no token was returned."}
	}

	s := session.Session{Token: token, User: result.Profile()}
	if err := c.store.Save(s); err != nil {
		return session.Session{}, &Error{Kind: KindBackend, Message: "Could not save the session.", Err: err}
	}
	return s, nil
}
