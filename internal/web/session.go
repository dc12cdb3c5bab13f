package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"visitor-cli/internal/session"
	"visitor-cli/pkg/models"
)

const cookieName = "visitor_session"

// cookieStore adapts one request's gorilla session to session.Store.
type cookieStore struct {
	store sessions.Store
	r     *http.Request
	w     http.ResponseWriter
}

func (s *Server) sessionFor(c *gin.Context) *cookieStore {
	return &cookieStore{store: s.sessions, r: c.Request, w: c.Writer}
}

func (c *cookieStore) get() *sessions.Session {
	// A cookie that no longer decodes (rotated secret) yields a fresh session.
	sess, _ := c.store.Get(c.r, cookieName)
	return sess
}

func (c *cookieStore) Load() session.Session {
	sess := c.get()
	str := func(key string) string {
		v, _ := sess.Values[key].(string)
		return v
	}
	return session.Session{
		Token: str("token"),
		User: models.User{
			ID:    str("user_id"),
			Name:  str("user_name"),
			Email: str("user_email"),
		},
	}
}

func (c *cookieStore) Save(s session.Session) error {
	sess := c.get()
	sess.Values["token"] = s.Token
	sess.Values["user_id"] = s.User.ID
	sess.Values["user_name"] = s.User.Name
	sess.Values["user_email"] = s.User.Email
	return sess.Save(c.r, c.w)
}

func (c *cookieStore) Clear() error {
	sess := c.get()
	for _, key := range []string{"token", "user_id", "user_name", "user_email"} {
		delete(sess.Values, key)
	}
	return sess.Save(c.r, c.w)
}

// flash queues a one-shot banner for the next rendered page.
func (c *cookieStore) flash(kind, msg string) {
	sess := c.get()
	sess.AddFlash(kind + "|" + msg)
	_ = sess.Save(c.r, c.w)
}

type banner struct {
	Kind    string // "success" or "error"
	Message string
}

func (c *cookieStore) flashes() []banner {
	sess := c.get()
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.r, c.w)

	out := make([]banner, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = "success", s
		}
		out = append(out, banner{Kind: kind, Message: msg})
	}
	return out
}

// NewCookieStore builds the cookie store used for admin sessions.
func NewCookieStore(secret []byte, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
