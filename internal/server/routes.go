package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/hypergraph/pkg/buildinfo"
	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/pipeline"
	"github.com/matzehuels/hypergraph/pkg/render"
)

func (s *Server) routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.handleListDocuments)
		r.Get("/{name}", s.handleGetDocument)
		r.Get("/{name}/render.svg", s.handlePreviewSVG)
		r.Post("/{name}/load", s.handleLoad)
		r.Post("/{name}/save", s.handleSave)
	})

	r.Get("/document", s.handleLiveDocument)
	r.Get("/state", s.handleState)
	r.Get("/render.svg", s.handleRenderSVG)
	r.Get("/vertices/{id}/anchors", s.handleAnchors)

	r.Route("/drag", func(r chi.Router) {
		r.Post("/start", s.handleDragStart)
		r.Post("/tick", s.handleDragTick)
		r.Post("/end", s.handleDragEnd)
	})

	r.Get("/events", s.handleEvents)
}

// =============================================================================
// Documents
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"build":       buildinfo.Get(),
		"subscribers": s.broker.Subscribers(),
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": names})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	raw, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

type loadResponse struct {
	Name       string   `json:"name"`
	Generation uint64   `json:"generation"`
	Vertices   int      `json:"vertices"`
	Edges      int      `json:"edges"`
	Warnings   []string `json:"warnings"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	warnings, err := s.LoadDocument(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := s.engine.Document()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := loadResponse{
		Name:       name,
		Generation: s.engine.Generation(),
		Vertices:   d.Len(),
		Edges:      len(d.Edges),
		Warnings:   make([]string, len(warnings)),
	}
	for i, wn := range warnings {
		resp.Warnings[i] = wn.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	raw, err := s.engine.Serialize()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, raw); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.setDocumentName(name)
	s.logger.Info("document saved", "name", name, "bytes", len(raw))
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "bytes": len(raw)})
}

func (s *Server) handleLiveDocument(w http.ResponseWriter, r *http.Request) {
	raw, err := s.engine.Serialize()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, dragged := s.engine.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"document":   s.documentName(),
		"generation": s.engine.Generation(),
		"state":      state.String(),
		"dragging":   dragged,
	})
}

// svgQuery reads the anchors and scale query parameters.
func svgQuery(r *http.Request) (anchors bool, scale float64, err error) {
	q := r.URL.Query()
	anchors, _ = strconv.ParseBool(q.Get("anchors"))
	if v := q.Get("scale"); v != "" {
		scale, err = strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			return false, 0, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number")
		}
	}
	return anchors, scale, nil
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	anchors, scale, err := svgQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.engine.Document()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := []render.SVGOption{render.WithTitle(s.documentName())}
	if anchors {
		opts = append(opts, render.WithAnchors())
	}
	if scale > 0 {
		opts = append(opts, render.WithScale(scale))
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(render.RenderSVG(d, opts...))
}

// handlePreviewSVG renders a stored document through the cached pipeline
// without touching the live engine.
func (s *Server) handlePreviewSVG(w http.ResponseWriter, r *http.Request) {
	anchors, scale, err := svgQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	raw, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.previews().Execute(r.Context(), raw, pipeline.Options{
		Formats: []render.Format{render.FormatSVG},
		Scale:   scale,
		Anchors: anchors,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(res.CacheInfo.RenderHit))
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(res.Artifacts[render.FormatSVG])
}

// handleAnchors replies with all four anchors, or with the single point
// named by ?side=north|south|east|west.
func (s *Server) handleAnchors(w http.ResponseWriter, r *http.Request) {
	anchors, err := s.engine.Anchors(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	side := r.URL.Query().Get("side")
	if side == "" {
		writeJSON(w, http.StatusOK, anchors)
		return
	}
	dir, err := geom.ParseDirection(side)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "side"))
		return
	}
	p, _ := anchors.Get(dir)
	writeJSON(w, http.StatusOK, p)
}

// =============================================================================
// Drag
// =============================================================================

type dragRequest struct {
	VertexID string  `json:"vertexId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.engine.DragStart(req.VertexID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDragTick(w http.ResponseWriter, r *http.Request) {
	var req dragRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.engine.DragTick(req.VertexID, req.X, req.Y); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DragEnd(); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Events
// =============================================================================

// handleEvents streams host updates. A new subscriber first receives the
// current scene, then live updates. Events published between subscribing
// and the snapshot may be delivered twice, which is harmless since every
// event carries absolute state.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	id, events := s.broker.Subscribe()
	defer s.broker.Unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for _, ev := range snapshotEvents(s.scene.Snapshot(), s.scene.VertexIDs()) {
		if err := writeEvent(w, ev); err != nil {
			return
		}
	}
	if err := rc.Flush(); err != nil {
		s.logger.Warn("event stream not flushable", "error", err)
		return
	}

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data)
	return err
}
