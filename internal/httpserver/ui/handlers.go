package ui

import (
	"context"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/content"
	"finitefield.org/glb-gallery/internal/gallery"
	custommw "finitefield.org/glb-gallery/internal/httpserver/middleware"
	"finitefield.org/glb-gallery/internal/httpserver/templates"
	"finitefield.org/glb-gallery/internal/platform/observability"
	"finitefield.org/glb-gallery/internal/platform/requestctx"
	"finitefield.org/glb-gallery/internal/platform/storage"
	appsession "finitefield.org/glb-gallery/internal/session"
)

const defaultTitle = "GLB Gallery"

// Events raised through HX-Trigger when the viewer changes state without a swap. The page
// toggles the modal itself so the loaded model survives.
const (
	viewerOpenedEvent = "gallery:viewer-opened"
	viewerClosedEvent = "gallery:viewer-closed"
)

// Dependencies collects what the UI handlers read from.
type Dependencies struct {
	State  *gallery.State
	Store  storage.Store
	Notice content.Notice
	Title  string
}

// Handlers exposes HTTP handlers for the gallery page and fragments.
type Handlers struct {
	state  *gallery.State
	store  storage.Store
	notice content.Notice
	title  string
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	state := deps.State
	if state == nil {
		state = gallery.Initialize(context.Background(), nil, gallery.WithLogger(zap.NewNop()))
	}
	notice := deps.Notice
	if notice.Title == "" {
		notice = content.DefaultNotice()
	}
	title := strings.TrimSpace(deps.Title)
	if title == "" {
		title = defaultTitle
	}
	return &Handlers{
		state:  state,
		store:  deps.Store,
		notice: notice,
		title:  title,
	}
}

// Gallery renders the full page. The notice opens on the first view of a browser session.
func (h *Handlers) Gallery(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	query := r.URL.Query().Get("q")

	notice := sess.Notice()
	opened := notice.ShowOnce()
	sess.StoreNotice(notice)

	viewer := sess.Viewer()

	data := templates.PageData{
		Title:       h.title,
		Environment: custommw.EnvironmentFromContext(r.Context()),
		Grid:        templates.NewGridData(gallery.Filter(h.state.Registry.Cards(), query), query),
		Viewer:      templates.NewViewerData(viewer),
		Notice:      templates.NewNoticeData(h.notice, opened),
	}
	render(w, r, templates.Page(data))
}

// Grid re-renders the grid with visibility recomputed for q.
func (h *Handlers) Grid(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	vis := gallery.Filter(h.state.Registry.Cards(), query)
	grid := templates.NewGridData(vis, query)
	requestctx.Logger(r.Context()).Debug("grid filtered",
		zap.String("query", observability.SanitizeTerm(query)),
		zap.Int("visible", grid.Visible),
	)
	render(w, r, templates.Grid(grid))
}

// OpenViewer binds the session's viewer to the requested card. When the page reports that
// its widget already holds the asset (loaded=<asset path>), only the open event is sent.
func (h *Handlers) OpenViewer(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	card, ok := h.state.Registry.Lookup(q.Get("folder"), q.Get("file"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess := mustSession(r)
	viewer := sess.Viewer()
	viewer.Open(card)
	sess.StoreViewer(viewer)

	reused := q.Get("loaded") == card.AssetPath
	requestctx.Logger(r.Context()).Debug("viewer opened",
		zap.String("card_id", card.ID),
		zap.String("asset_path", card.AssetPath),
		zap.Bool("reused", reused),
	)
	if reused {
		triggerOnly(w, viewerOpenedEvent)
		return
	}
	render(w, r, templates.Viewer(templates.NewViewerData(viewer)))
}

// CloseViewer hides the viewer and keeps its slot. Nothing is swapped, so the widget keeps
// its loaded model.
func (h *Handlers) CloseViewer(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	viewer := sess.Viewer()
	viewer.Close()
	sess.StoreViewer(viewer)
	triggerOnly(w, viewerClosedEvent)
}

// DismissNotice closes the notice for good.
func (h *Handlers) DismissNotice(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	notice := sess.Notice()
	notice.Dismiss()
	sess.StoreNotice(notice)
	render(w, r, templates.Notice(templates.NewNoticeData(h.notice, notice.IsOpen())))
}

// Copied answers a successful browser-side copy with the "Copied!" control, which reverts
// itself after the feedback delay.
func (h *Handlers) Copied(w http.ResponseWriter, r *http.Request) {
	view, ok := h.controlFromRequest(r, true)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	requestctx.Logger(r.Context()).Debug("folder copied",
		zap.String("scope", view.Scope),
		zap.String("control", view.Control),
		zap.String("folder_id", view.FolderID),
	)
	render(w, r, templates.CopyControl(view))
}

// CopyLabel renders the control with its resting label.
func (h *Handlers) CopyLabel(w http.ResponseWriter, r *http.Request) {
	view, ok := h.controlFromRequest(r, false)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	render(w, r, templates.CopyControl(view))
}

func (h *Handlers) controlFromRequest(r *http.Request, copied bool) (templates.ControlView, bool) {
	control, ok := gallery.ParseControl(r.FormValue("control"))
	if !ok {
		return templates.ControlView{}, false
	}
	folder := r.FormValue("folder")
	scope := r.FormValue("scope")

	switch {
	case scope == templates.ViewerScope:
		if control != gallery.ControlViewerCopy || !h.state.Registry.HasFolder(folder) {
			return templates.ControlView{}, false
		}
	default:
		card, found := h.state.Registry.Get(scope)
		if !found || card.FolderID != folder || control == gallery.ControlViewerCopy {
			return templates.ControlView{}, false
		}
	}
	return templates.NewControlView(scope, control, folder, copied), true
}

func triggerOnly(w http.ResponseWriter, event string) {
	w.Header().Set("HX-Trigger", event)
	w.WriteHeader(http.StatusNoContent)
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	templ.Handler(component).ServeHTTP(w, r)
}

func mustSession(r *http.Request) *appsession.Session {
	sess, ok := custommw.SessionFromContext(r.Context())
	if !ok {
		panic("ui: session middleware not installed")
	}
	return sess
}
