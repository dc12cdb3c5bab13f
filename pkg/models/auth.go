package models

import "encoding/json"

// User is the admin profile returned on login.
type User struct {
	ID    string `json:"id,omitempty" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Email string `json:"email" mapstructure:"email"`
}

// LoginPayload is the body for POST /api/login/
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse accepts the token under any of the names backends use,
// with the profile either nested under "user" or flattened.
type LoginResponse struct {
	Token       string          `json:"token"`
	Access      string          `json:"access"`
	AccessToken string          `json:"access_token"`
	User        *wireUser       `json:"user"`
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
}

type wireUser struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
}

// SessionToken returns the first token field that is set.
func (r LoginResponse) SessionToken() string {
	return firstNonEmpty(r.Token, r.AccessToken, r.Access)
}

// Profile returns the user described by the response.
func (r LoginResponse) Profile() User {
	if r.User != nil {
		return User{ID: rawID(r.User.ID), Name: r.User.Name, Email: r.User.Email}
	}
	return User{ID: rawID(r.ID), Name: r.Name, Email: r.Email}
}
