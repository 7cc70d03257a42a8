package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vpetrenko/specsheet/internal/metrics"
	"github.com/vpetrenko/specsheet/internal/model"
	"github.com/vpetrenko/specsheet/internal/query"
)

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":  "Instrument Selection",
		"Tables": s.cfg.Tables,
	})
}

// handleInstrumentPage renders one instrument's query page. A POST with
// a numeric value runs the range match against the instrument's table.
func (s *Server) handleInstrumentPage(c *gin.Context) {
	table, ok := s.cfg.TableBySlug(c.Param("slug"))
	if !ok {
		c.HTML(http.StatusNotFound, "notfound.html", gin.H{"Slug": c.Param("slug")})
		return
	}

	data := gin.H{
		"Table":    table,
		"Searched": false,
		"Value":    "",
	}

	if c.Request.Method == http.MethodPost {
		raw := strings.TrimSpace(c.PostForm("value"))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			data["Error"] = "Enter a numeric value."
			c.HTML(http.StatusBadRequest, "instrument.html", data)
			return
		}

		records, err := s.source.Records(c.Request.Context(), table.Name)
		if err != nil {
			s.log.Error("fetch rows", "table", table.Name, "error", err)
			data["Error"] = "Row store unavailable, try again."
			c.HTML(http.StatusBadGateway, "instrument.html", data)
			return
		}

		result, found := query.FindMatch(records, value)
		data["Searched"] = true
		data["Value"] = raw
		if found {
			data["Result"] = result
			metrics.MatchQueries.WithLabelValues(table.Name, "hit").Inc()
		} else {
			metrics.MatchQueries.WithLabelValues(table.Name, "miss").Inc()
		}
	}

	c.HTML(http.StatusOK, "instrument.html", data)
}

// instrumentInfo is the public description of one configured table.
type instrumentInfo struct {
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Facets     []string `json:"facets,omitempty"`
	QueryLabel string   `json:"query_label"`
}

func (s *Server) handleListInstruments(c *gin.Context) {
	out := make([]instrumentInfo, 0, len(s.cfg.Tables))
	for _, t := range s.cfg.Tables {
		out = append(out, instrumentInfo{
			Name:       t.Name,
			Slug:       t.Slug,
			Facets:     t.Facets,
			QueryLabel: t.QueryLabel,
		})
	}
	c.JSON(http.StatusOK, gin.H{"instruments": out})
}

type matchRequest struct {
	Table string   `json:"table" binding:"required"`
	Value *float64 `json:"value" binding:"required"`
}

// handleMatch runs a range match and returns the first matching record,
// or matched=false when no row's interval contains the value. Not
// finding a row is a 200, not an error.
func (s *Server) handleMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	table, ok := s.cfg.TableBySlug(req.Table)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table", "table": req.Table})
		return
	}

	records, err := s.source.Records(c.Request.Context(), table.Name)
	if err != nil {
		s.log.Error("fetch rows", "table", table.Name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "row store unavailable"})
		return
	}

	result, found := query.FindMatch(records, *req.Value)
	if !found {
		metrics.MatchQueries.WithLabelValues(table.Name, "miss").Inc()
		c.JSON(http.StatusOK, gin.H{"matched": false, "record": nil})
		return
	}
	metrics.MatchQueries.WithLabelValues(table.Name, "hit").Inc()
	c.JSON(http.StatusOK, gin.H{"matched": true, "record": result})
}

// handleFacets returns the valid values of the next facet given the
// selections made so far. Selections arrive as repeated sel parameters
// of the form "Facet=Value", in the order the caller applies them:
//
//	GET /api/v1/facets?table=magnetic-flow-meter&facet=Type&sel=Size%3D1%20inch
func (s *Server) handleFacets(c *gin.Context) {
	table, ok := s.cfg.TableBySlug(c.Query("table"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table", "table": c.Query("table")})
		return
	}

	facet := c.Query("facet")
	if facet == "" || !table.HasFacet(facet) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown facet", "facet": facet})
		return
	}

	chain, badSel := parseSelections(c.QueryArray("sel"), table)
	if badSel != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": badSel})
		return
	}

	records, err := s.source.Records(c.Request.Context(), table.Name)
	if err != nil {
		s.log.Error("fetch rows", "table", table.Name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "row store unavailable"})
		return
	}

	metrics.FacetQueries.WithLabelValues(table.Name).Inc()
	values := query.AvailableValues(records, chain, facet)
	if values == nil {
		values = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"facet": facet, "values": values})
}

type recordsRequest struct {
	Table      string            `json:"table" binding:"required"`
	Selections []model.Selection `json:"selections"`
}

// handleRecords returns every record matching the full facet chain, in
// source row order. A saturated chain need not narrow to one row.
func (s *Server) handleRecords(c *gin.Context) {
	var req recordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	table, ok := s.cfg.TableBySlug(req.Table)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table", "table": req.Table})
		return
	}

	records, err := s.source.Records(c.Request.Context(), table.Name)
	if err != nil {
		s.log.Error("fetch rows", "table", table.Name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "row store unavailable"})
		return
	}

	metrics.FacetQueries.WithLabelValues(table.Name).Inc()
	matches := query.MatchingRecords(records, req.Selections)
	if matches == nil {
		matches = []model.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(matches), "records": matches})
}

// parseSelections decodes "Facet=Value" pairs, preserving caller order.
// Returns a non-empty error string on a malformed or unknown facet.
func parseSelections(raw []string, table model.Table) ([]model.Selection, string) {
	chain := make([]model.Selection, 0, len(raw))
	for _, s := range raw {
		facet, value, found := strings.Cut(s, "=")
		if !found || facet == "" {
			return nil, "malformed selection: " + s
		}
		if !table.HasFacet(facet) {
			return nil, "unknown facet: " + facet
		}
		chain = append(chain, model.Selection{Facet: facet, Value: value})
	}
	return chain, ""
}
