package web

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"visitor-cli/internal/auth"
	"visitor-cli/internal/client"
	"visitor-cli/internal/export"
	"visitor-cli/internal/viewer"
)

const ctxExpired = "session_expired"

var templateFuncs = template.FuncMap{
	"checkin":   export.CheckinDisplay,
	"listURL":   listURL,
	"exportURL": exportURL,
	"pageURL": func(f viewer.FilterState, n int) template.URL {
		return listURL(f.WithPage(n))
	},
	"sortURL": func(f viewer.FilterState) template.URL {
		return listURL(f.ToggleSort())
	},
	"add": func(a, b int) int { return a + b },
}

// render adds branding, the signed-in user and pending banners to data.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	store := s.sessionFor(c)
	if data == nil {
		data = gin.H{}
	}
	banners := store.flashes()
	if b, ok := data["Banner"].(banner); ok {
		banners = append(banners, b)
	}

	data["Company"] = s.settings.CompanyName
	data["Logo"] = s.settings.CompanyLogo
	data["User"] = store.Load().User
	data["LoggedIn"] = auth.Check(store) == auth.Authenticated
	data["Banners"] = banners
	c.HTML(status, name, data)
}

// apiFor returns a client bound to this request's cookie session.
// A 401 marks the request so handlers can send the admin to the login screen.
func (s *Server) apiFor(c *gin.Context) *client.VisitorClient {
	return client.New(client.ClientConfig{
		BaseURL:        s.settings.APIURL,
		Timeout:        s.settings.Timeout,
		OnUnauthorized: func() { c.Set(ctxExpired, true) },
	}, s.sessionFor(c))
}

// sessionExpired redirects to /login when the backend rejected the token
// while the admin was inside the console.
func (s *Server) sessionExpired(c *gin.Context) bool {
	if !c.GetBool(ctxExpired) || !strings.HasPrefix(c.Request.URL.Path, "/admin") {
		return false
	}
	s.sessionFor(c).flash("error", "Your session has expired. Please log in again.")
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
	return true
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.Check(s.sessionFor(c)) == auth.Unauthenticated {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// filterFromQuery reads the table selection from the URL. Filter forms do
// not submit "page", so any filter change lands on page 1.
func (s *Server) filterFromQuery(c *gin.Context) viewer.FilterState {
	f := viewer.NewFilterState()
	f.PageSize = s.settings.PageSize
	f.Search = c.Query("search")
	f.Purpose = c.Query("purpose")
	f.Start = c.Query("start")
	f.End = c.Query("end")
	if c.Query("sort") == string(viewer.SortAsc) {
		f.Sort = viewer.SortAsc
	}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		f.Page = n
	}
	return f
}

func filterValues(f viewer.FilterState) url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("search", f.Search)
	set("purpose", f.Purpose)
	set("start", f.Start)
	set("end", f.End)
	if f.Sort == viewer.SortAsc {
		v.Set("sort", string(viewer.SortAsc))
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	return v
}

func listURL(f viewer.FilterState) template.URL {
	return template.URL(withQuery("/admin/visitors", filterValues(f)))
}

func exportURL(f viewer.FilterState) template.URL {
	v := filterValues(f)
	v.Del("page")
	return template.URL(withQuery("/admin/visitors/export", v))
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}
