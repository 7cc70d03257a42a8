package server

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vpetrenko/specsheet/internal/metrics"
	"github.com/vpetrenko/specsheet/internal/model"
)

func (s *Server) handleLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// handleLogin checks the posted credentials. Attempts are throttled per
// remote IP, and the comparison is constant-time.
func (s *Server) handleLogin(c *gin.Context) {
	if !s.loginLimiter.Allow(c.ClientIP()) {
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		c.HTML(http.StatusTooManyRequests, "login.html", gin.H{"Error": "Too many attempts, try again later."})
		return
	}

	user := c.PostForm("user")
	pass := c.PostForm("pass")

	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.Admin.User)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.cfg.Admin.Pass)) == 1
	if !userOK || !passOK {
		metrics.LoginAttempts.WithLabelValues("denied").Inc()
		s.log.Warn("login denied", "client_ip", c.ClientIP())
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials."})
		return
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	token := s.sessions.Create(user)
	c.SetCookie(sessionCookie, token, int(s.cfg.Admin.SessionTTL.Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.Revoke(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// handleDashboard lists the rows of one table, defaulting to the first
// configured instrument.
func (s *Server) handleDashboard(c *gin.Context) {
	table, ok := s.dashboardTable(c.Query("table"))
	if !ok {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Slug": c.Query("table")})
		return
	}

	records, err := s.source.Records(c.Request.Context(), table.Name)
	if err != nil {
		s.log.Error("fetch rows", "table", table.Name, "error", err)
		c.HTML(http.StatusBadGateway, "dashboard.html", gin.H{
			"Table":  table,
			"Tables": s.cfg.Tables,
			"Error":  "Row store unavailable.",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Table":   table,
		"Tables":  s.cfg.Tables,
		"Records": records,
	})
}

func (s *Server) handleAddPage(c *gin.Context) {
	table, ok := s.dashboardTable(c.Query("table"))
	if !ok {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Slug": c.Query("table")})
		return
	}
	c.HTML(http.StatusOK, "add_row.html", gin.H{"Table": table, "Tables": s.cfg.Tables})
}

// handleAddRow appends a row built from the posted form fields. The
// Instrument column is forced to the table's name so a typo cannot file
// a row under the wrong instrument.
func (s *Server) handleAddRow(c *gin.Context) {
	table, ok := s.dashboardTable(c.PostForm("table"))
	if !ok {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Slug": c.PostForm("table")})
		return
	}

	rec := make(model.Record, len(table.Columns))
	for _, col := range table.Columns {
		rec[col] = c.PostForm(col)
	}
	rec["Instrument"] = table.Name

	if err := s.source.Append(c.Request.Context(), table.Name, rec); err != nil {
		s.log.Error("append row", "table", table.Name, "error", err)
		c.HTML(http.StatusBadGateway, "add_row.html", gin.H{
			"Table":  table,
			"Tables": s.cfg.Tables,
			"Error":  "Row store unavailable.",
		})
		return
	}

	metrics.RowsAppended.WithLabelValues(table.Name).Inc()
	s.log.Info("row appended", "table", table.Name)
	c.Redirect(http.StatusFound, "/admin/dashboard?table="+table.Slug)
}

// dashboardTable resolves an optional slug, defaulting to the first
// configured table.
func (s *Server) dashboardTable(slug string) (model.Table, bool) {
	if slug == "" {
		if len(s.cfg.Tables) == 0 {
			return model.Table{}, false
		}
		return s.cfg.Tables[0], true
	}
	return s.cfg.TableBySlug(slug)
}
