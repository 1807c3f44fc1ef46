package ui

import (
	"net/http"

	"finitefield.org/glb-gallery/internal/gallery"
	"finitefield.org/glb-gallery/internal/manifest"
	"finitefield.org/glb-gallery/internal/platform/httpx"
)

type cardsResponse struct {
	Query   string         `json:"query"`
	Total   int            `json:"total"`
	Visible int            `json:"visible"`
	Cards   []cardResponse `json:"cards"`
}

type cardResponse struct {
	gallery.Card
	Visible bool `json:"visible"`
}

// Cards lists every card with its visibility for q.
func (h *Handlers) Cards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) > 256 {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_query", "query is too long", http.StatusBadRequest).
			WithDetails(map[string]any{"max_length": 256}))
		return
	}

	vis := gallery.Filter(h.state.Registry.Cards(), query)
	resp := cardsResponse{
		Query:   query,
		Total:   len(vis),
		Visible: gallery.VisibleCount(vis),
		Cards:   make([]cardResponse, 0, len(vis)),
	}
	for _, v := range vis {
		resp.Cards = append(resp.Cards, cardResponse{Card: v.Card, Visible: v.Visible})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

type healthResponse struct {
	Status   string          `json:"status"`
	Cards    int             `json:"cards"`
	Manifest string          `json:"manifest,omitempty"`
	Report   manifest.Report `json:"report"`
	Error    string          `json:"error,omitempty"`
}

// Health reports liveness. A failed manifest load degrades the status but still answers 200.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Cards:    h.state.Registry.Len(),
		Manifest: h.state.Source,
		Report:   h.state.Report,
	}
	if h.state.LoadErr != nil {
		resp.Status = "degraded"
		resp.Error = h.state.LoadErr.Error()
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
