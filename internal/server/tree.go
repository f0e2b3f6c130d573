package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/pipeline"
)

// handleLayout handles GET /api/layout, returning positioned boxes and
// connectors as JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatJSON, "application/json")
}

// handleTreeSVG handles GET /api/tree.svg.
func (s *Server) handleTreeSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatSVG, "image/svg+xml")
}

// handleTreeDOT handles GET /api/tree.dot.
func (s *Server) handleTreeDOT(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatDOT, "text/vnd.graphviz")
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, contentType string) {
	opts, err := s.chartOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Snapshot-Hash", res.SnapshotHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// chartOptions overlays query parameters on the server's layout options.
// Supported: node_width, node_height, rank_sep, node_sep, spouse_gap,
// title, detailed, static and refresh.
func (s *Server) chartOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.layout
	opts.Formats = nil
	q := r.URL.Query()

	for name, dst := range map[string]*float64{
		"node_width":  &opts.NodeWidth,
		"node_height": &opts.NodeHeight,
		"rank_sep":    &opts.RankSep,
		"node_sep":    &opts.NodeSep,
		"spouse_gap":  &opts.SpouseGap,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = f
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	opts.Detailed = opts.Detailed || queryBool(q.Get("detailed"))
	opts.Static = opts.Static || queryBool(q.Get("static"))
	opts.Refresh = queryBool(q.Get("refresh"))
	return opts, nil
}

func queryBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
