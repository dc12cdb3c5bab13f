package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"visitor-cli/internal/client"
	"visitor-cli/internal/dashboard"
	"visitor-cli/internal/export"
	"visitor-cli/internal/viewer"
	"visitor-cli/pkg/models"
)

func (s *Server) handleDashboard(c *gin.Context) {
	sum, err := dashboard.Load(c.Request.Context(), s.apiFor(c), s.now())
	if s.sessionExpired(c) {
		return
	}

	data := gin.H{"Summary": sum}
	if err != nil {
		s.logger.Printf("dashboard: %v", err)
		data["Banner"] = banner{Kind: "error", Message: client.Message(err)}
	}
	s.render(c, http.StatusOK, "dashboard.html", data)
}

func (s *Server) handleVisitors(c *gin.Context) {
	f := s.filterFromQuery(c)

	records, err := s.apiFor(c).ListAllVisitors(c.Request.Context(), f.ListQuery())
	if s.sessionExpired(c) {
		return
	}

	data := gin.H{"Filter": f, "Purposes": models.Purposes}
	if err != nil {
		s.logger.Printf("list visitors: %v", err)
		data["Banner"] = banner{Kind: "error", Message: client.Message(err)}
	}
	data["Page"] = viewer.View(records, f, s.now())
	s.render(c, http.StatusOK, "visitors.html", data)
}

func (s *Server) handleExport(c *gin.Context) {
	f := s.filterFromQuery(c)

	records, err := s.apiFor(c).ListAllVisitors(c.Request.Context(), f.ListQuery())
	if s.sessionExpired(c) {
		return
	}
	if err != nil {
		s.sessionFor(c).flash("error", "Export failed: "+client.Message(err))
		c.Redirect(http.StatusSeeOther, string(listURL(f)))
		return
	}

	now := s.now()
	view := viewer.View(records, f, now)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(now)+`"`)
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, view.Filtered); err != nil {
		s.logger.Printf("export: %v", err)
	}
}

func (s *Server) handleVisitorDetail(c *gin.Context) {
	v, err := s.apiFor(c).GetVisitor(c.Request.Context(), c.Param("id"))
	if s.sessionExpired(c) {
		return
	}
	if err != nil {
		s.sessionFor(c).flash("error", client.Message(err))
		c.Redirect(http.StatusSeeOther, "/admin/visitors")
		return
	}
	s.render(c, http.StatusOK, "visitor.html", gin.H{"Visitor": v})
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	err := s.apiFor(c).DeleteVisitor(c.Request.Context(), id)
	if s.sessionExpired(c) {
		return
	}

	store := s.sessionFor(c)
	if err != nil {
		s.logger.Printf("delete visitor %s: %v", id, err)
		store.flash("error", "Failed to delete visitor: "+client.Message(err))
	} else {
		store.flash("success", "Visitor deleted.")
	}

	back := c.PostForm("return")
	if !strings.HasPrefix(back, "/admin/visitors") {
		back = "/admin/visitors"
	}
	c.Redirect(http.StatusSeeOther, back)
}
