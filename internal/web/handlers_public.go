package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"visitor-cli/internal/auth"
	"visitor-cli/internal/client"
	"visitor-cli/internal/validate"
	"visitor-cli/pkg/models"
)

func (s *Server) handleCheckinForm(c *gin.Context) {
	s.render(c, http.StatusOK, "checkin.html", gin.H{
		"Form":     validate.VisitorForm{},
		"Errors":   validate.Errors{},
		"Purposes": models.Purposes,
	})
}

func (s *Server) handleCheckinSubmit(c *gin.Context) {
	var form validate.VisitorForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Printf("check-in form: %v", err)
	}
	data := gin.H{"Form": form, "Purposes": models.Purposes}

	errs := validate.Visitor(form)
	data["Errors"] = errs
	if errs.Any() {
		s.render(c, http.StatusUnprocessableEntity, "checkin.html", data)
		return
	}

	form = form.Trimmed()
	v, err := s.apiFor(c).SubmitVisitor(c.Request.Context(), models.VisitorPayload{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Host:        form.Host,
		Purpose:     form.Purpose,
		Message:     form.Message,
		CheckinTime: s.now().Format(time.RFC3339),
	})
	if err != nil {
		s.logger.Printf("check-in failed: %v", err)
		data["Banner"] = banner{Kind: "error", Message: client.Message(err)}
		s.render(c, http.StatusOK, "checkin.html", data)
		return
	}

	s.render(c, http.StatusOK, "success.html", gin.H{"Visitor": v})
}

func (s *Server) handleLoginForm(c *gin.Context) {
	if auth.Check(s.sessionFor(c)) == auth.Authenticated {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	s.render(c, http.StatusOK, "login.html", gin.H{"Errors": validate.Errors{}})
}

func (s *Server) handleLoginSubmit(c *gin.Context) {
	var form validate.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		s.logger.Printf("login form: %v", err)
	}
	email, password := strings.TrimSpace(form.Email), form.Password
	data := gin.H{"Email": email}

	errs := validate.Login(email, password)
	data["Errors"] = errs
	if errs.Any() {
		s.render(c, http.StatusUnprocessableEntity, "login.html", data)
		return
	}

	sess, err := s.apiFor(c).Login(c.Request.Context(), email, password)
	if err != nil {
		s.logger.Printf("login failed for %s: %v", email, err)
		data["Banner"] = banner{Kind: "error", Message: client.Message(err)}
		s.render(c, http.StatusOK, "login.html", data)
		return
	}

	s.logger.Printf("admin %s signed in", sess.User.Email)
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) handleLogout(c *gin.Context) {
	store := s.sessionFor(c)
	if err := store.Clear(); err != nil {
		s.logger.Printf("logout: %v", err)
	}
	store.flash("success", "You have been logged out.")
	c.Redirect(http.StatusSeeOther, "/login")
}
