package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/reorder"
	"github.com/amterp/swatch/internal/service"
	"github.com/samber/mo"
)

// Handler contains all HTTP handlers for the API.
//
// Single session: every request drives the same Controller, so all
// connected browser tabs share one swatch and history.
type Handler struct {
	controller *service.Controller
}

// NewHandler creates a new handler over the controller.
func NewHandler(controller *service.Controller) *Handler {
	return &Handler{controller: controller}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/state", h.GetState)
	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	// Buttons
	mux.HandleFunc("POST /api/v1/apply", h.Apply)
	mux.HandleFunc("POST /api/v1/undo", h.Undo)
	mux.HandleFunc("POST /api/v1/redo", h.Redo)
	mux.HandleFunc("POST /api/v1/reset", h.Reset)
	mux.HandleFunc("POST /api/v1/lists/{list}/toggle", h.ToggleList)

	// Drag and drop
	mux.HandleFunc("POST /api/v1/drag/start", h.DragStart)
	mux.HandleFunc("POST /api/v1/drag/over", h.DragOver)
	mux.HandleFunc("POST /api/v1/drag/leave", h.DragLeave)
	mux.HandleFunc("POST /api/v1/drag/drop", h.Drop)
	mux.HandleFunc("POST /api/v1/drag/touchend", h.TouchEnd)
	mux.HandleFunc("POST /api/v1/drag/cancel", h.DragCancel)

	// Static files (frontend)
	mux.Handle("/", h.StaticHandler())
}

// decodeOptional decodes a JSON body into v. An empty body leaves v as is.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// --- State and buttons ---

// GetState returns the full read model.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.controller.Snapshot())
}

// Apply generates and applies a new color.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.controller.ApplyClicked())
}

// Undo restores the previous color. Undoing with an empty history is not
// an error.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.controller.UndoClicked())
}

// Redo re-applies the most recently undone color.
func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.controller.RedoClicked())
}

// Reset clears the history.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.controller.ResetClicked())
}

// ToggleList shows or hides one of the history lists.
func (h *Handler) ToggleList(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseListKind(r.PathValue("list"))
	if err != nil {
		Error(w, err)
		return
	}
	snap, err := h.controller.ToggleList(kind)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, snap)
}

// --- Drag handlers ---

// DragStartRequest is the JSON body for starting a drag.
type DragStartRequest struct {
	List  string `json:"list"`
	Index *int   `json:"index"`
	ID    string `json:"id,omitempty"`    // Optional: entry ID the client saw at index
	Touch bool   `json:"touch,omitempty"` // Touch gestures skip the split nudge and may flick
}

// DragStart begins a drag of one history entry.
func (h *Handler) DragStart(w http.ResponseWriter, r *http.Request) {
	var req DragStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Index == nil {
		BadRequest(w, "index is required")
		return
	}
	kind, err := model.ParseListKind(req.List)
	if err != nil {
		Error(w, err)
		return
	}

	start := h.controller.DragStart
	if req.Touch {
		start = h.controller.TouchStart
	}
	if err := start(kind, *req.Index, req.ID); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, h.controller.Snapshot())
}

// DragOverRequest is the JSON body for pointer or touch movement. Item is
// the list item under the pointer; List alone means an empty list.
type DragOverRequest struct {
	PointerX float64           `json:"pointer_x"`
	Item     *reorder.ItemRect `json:"item,omitempty"`
	List     string            `json:"list,omitempty"`
}

// DragOverResponse reports the placeholder position, if it moved.
type DragOverResponse struct {
	Moved       bool          `json:"moved"`
	Placeholder *model.Target `json:"placeholder,omitempty"`
}

// DragOver moves the drop placeholder.
func (h *Handler) DragOver(w http.ResponseWriter, r *http.Request) {
	var req DragOverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	var target model.Target
	var moved bool
	switch {
	case req.Item != nil:
		target, moved = h.controller.DragOver(req.PointerX, *req.Item)
	case req.List != "":
		kind, err := model.ParseListKind(req.List)
		if err != nil {
			Error(w, err)
			return
		}
		target, moved = h.controller.DragOverEmpty(kind)
	default:
		BadRequest(w, "item or list is required")
		return
	}

	resp := DragOverResponse{Moved: moved}
	if moved {
		resp.Placeholder = &target
	}
	JSON(w, http.StatusOK, resp)
}

// DragLeaveRequest is the JSON body for leaving a list.
type DragLeaveRequest struct {
	List string `json:"list"`
}

// DragLeave removes the placeholder from a list the pointer left.
func (h *Handler) DragLeave(w http.ResponseWriter, r *http.Request) {
	var req DragLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	kind, err := model.ParseListKind(req.List)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"removed": h.controller.DragLeave(kind)})
}

// DropRequest names where a gesture ended. An empty List means outside both
// lists. Container marks the bare list element with no item under the
// pointer.
type DropRequest struct {
	List      string `json:"list,omitempty"`
	Index     *int   `json:"index,omitempty"` // Post-removal position; omit to use the placeholder
	Container bool   `json:"container,omitempty"`
}

// target converts the request. Unknown list names resolve to no target.
func (req DropRequest) target() mo.Option[model.Target] {
	if req.List == "" {
		return mo.None[model.Target]()
	}
	kind, err := model.ParseListKind(req.List)
	if err != nil {
		return mo.None[model.Target]()
	}
	switch {
	case req.Index != nil:
		return mo.Some(reorder.At(kind, *req.Index))
	case req.Container:
		return mo.Some(reorder.InContainer(kind))
	default:
		return mo.Some(reorder.InList(kind))
	}
}

// TouchEndRequest is the JSON body for lifting a finger.
type TouchEndRequest struct {
	DropRequest
	ViewportWidth int `json:"viewport_width"`
}

// DragResponse reports how a gesture ended and the resulting state.
type DragResponse struct {
	Outcome reorder.Outcome `json:"outcome"`
	State   model.Snapshot  `json:"state"`
}

// Drop ends a pointer drag.
func (h *Handler) Drop(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if err := decodeOptional(r, &req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	out, snap := h.controller.Drop(req.target())
	JSON(w, http.StatusOK, DragResponse{Outcome: out, State: snap})
}

// TouchEnd ends a touch drag.
func (h *Handler) TouchEnd(w http.ResponseWriter, r *http.Request) {
	var req TouchEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.ViewportWidth <= 0 {
		BadRequest(w, "viewport_width is required")
		return
	}
	out, snap := h.controller.TouchEnd(req.target(), req.ViewportWidth)
	JSON(w, http.StatusOK, DragResponse{Outcome: out, State: snap})
}

// DragCancel abandons the gesture in progress.
func (h *Handler) DragCancel(w http.ResponseWriter, r *http.Request) {
	out, snap := h.controller.DragCancel()
	JSON(w, http.StatusOK, DragResponse{Outcome: out, State: snap})
}
