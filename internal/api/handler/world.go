package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lmehner/blockworld/internal/api/apierr"
	"github.com/lmehner/blockworld/internal/api/response"
	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/world"
)

// WorldHandler serves the coordinator's read and write operations
type WorldHandler struct {
	world *world.World
}

// NewWorldHandler creates a WorldHandler
func NewWorldHandler(w *world.World) *WorldHandler {
	return &WorldHandler{world: w}
}

// refreshParam reads the optional ?refresh=true query parameter
func refreshParam(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "true"
}

// Overview handles GET /overview
func (h *WorldHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.world.Overview(r.Context(), refreshParam(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, overview)
}

// Lists handles GET /lists
func (h *WorldHandler) Lists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.world.Lists(r.Context(), refreshParam(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, lists)
}

// UpdateLists handles PATCH /lists
func (h *WorldHandler) UpdateLists(w http.ResponseWriter, r *http.Request) {
	var update model.ListUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid list update body"))
		return
	}

	if err := h.world.SetLists(r.Context(), update); err != nil {
		apierr.WriteError(w, err)
		return
	}

	lists, err := h.world.Lists(r.Context(), false)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, lists)
}

// Logs handles GET /logs
func (h *WorldHandler) Logs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.world.Logs(r.Context(), refreshParam(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, logs)
}

// Online handles GET /online
func (h *WorldHandler) Online(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.world.Online())
}

// Players handles GET /players
func (h *WorldHandler) Players(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.world.KnownPlayers())
}

// Player handles GET /players/{name}. Asking about a name that never
// joined is not an error; the zero-valued view comes back.
func (h *WorldHandler) Player(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	response.JSON(w, http.StatusOK, h.world.Player(name))
}

// Send handles POST /send
func (h *WorldHandler) Send(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Message == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("message is required"))
		return
	}

	if err := h.world.Send(r.Context(), body.Message); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Lifecycle handles POST /lifecycle/{action}. Lifecycle signals are
// best-effort, so this always succeeds for a known action.
func (h *WorldHandler) Lifecycle(w http.ResponseWriter, r *http.Request) {
	switch mux.Vars(r)["action"] {
	case "start":
		h.world.Start(r.Context())
	case "stop":
		h.world.Stop(r.Context())
	case "restart":
		h.world.Restart(r.Context())
	default:
		apierr.WriteError(w, apierr.NewInvalidRequestError("unknown lifecycle action"))
		return
	}
	response.NoContent(w)
}
