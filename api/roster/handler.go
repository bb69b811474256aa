// Package roster exposes the matching engine over HTTP. Handlers are
// thin: decode, call the engine, encode. All business rules live in the
// engine.
package roster

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/skyopshq/skyops/core/conflict"
	"github.com/skyopshq/skyops/core/engine"
	"github.com/skyopshq/skyops/core/model"
	"github.com/skyopshq/skyops/core/report"
	"github.com/skyopshq/skyops/core/roster"
)

// NewRosterHandler returns an HTTP handler exposing the filtered roster
// via GET /api/roster.
func NewRosterHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f := roster.Filter{
			Status:     r.URL.Query().Get("status"),
			Skill:      r.URL.Query().Get("skill"),
			Capability: r.URL.Query().Get("capability"),
			Location:   r.URL.Query().Get("location"),
		}
		if s, e := r.URL.Query().Get("start"), r.URL.Query().Get("end"); s != "" && e != "" {
			start, err := model.ParseDate(s)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			end, err := model.ParseDate(e)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			window, err := model.NewDateRange(start, end)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.Window = &window
		}
		writeJSON(w, eng.QueryRoster(f))
	})
}

// NewSummaryHandler returns an HTTP handler exposing the roster summary
// and maintenance flags via GET /api/roster/summary.
func NewSummaryHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		snap := eng.Snapshot()
		now := time.Now()
		writeJSON(w, struct {
			Summary     report.Summary           `json:"summary"`
			Maintenance []report.MaintenanceFlag `json:"maintenance"`
		}{report.Build(snap, now), report.MaintenanceFlags(snap, now)})
	})
}

type assignmentRequest struct {
	Mission string `json:"mission"`
	PilotID string `json:"pilot_id,omitempty"`
	DroneID string `json:"drone_id,omitempty"`
	Start   string `json:"start,omitempty"`
	End     string `json:"end,omitempty"`
}

type assignmentResponse struct {
	Assignment model.Assignment    `json:"assignment"`
	Conflicts  []conflict.Conflict `json:"conflicts"`
}

// NewAssignmentHandler returns an HTTP handler for POST (create) and
// DELETE (remove, ?id=...) on /api/assignments. Creation always returns
// the conflict list alongside the assignment; conflicts do not fail the
// request.
func NewAssignmentHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var in assignmentRequest
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			req := engine.CreateAssignmentRequest{
				MissionRef: in.Mission,
				PilotID:    in.PilotID,
				DroneID:    in.DroneID,
			}
			if in.Start != "" {
				t, err := model.ParseDate(in.Start)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				req.Start = t
			}
			if in.End != "" {
				t, err := model.ParseDate(in.End)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				req.End = t
			}
			a, conflicts, err := eng.CreateAssignment(req)
			if err != nil {
				writeError(w, err)
				return
			}
			if conflicts == nil {
				conflicts = []conflict.Conflict{}
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			if err := json.NewEncoder(w).Encode(assignmentResponse{Assignment: a, Conflicts: conflicts}); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if id == "" {
				http.Error(w, "id is required", http.StatusBadRequest)
				return
			}
			if err := eng.RemoveAssignment(id); err != nil {
				writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// NewConflictHandler returns an HTTP handler exposing conflict sweeps via
// GET /api/conflicts?scope=all|<mission>.
func NewConflictHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		scope := r.URL.Query().Get("scope")
		if scope == "" {
			scope = engine.ScopeAll
		}
		list, err := eng.DetectConflicts(scope)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, list)
	})
}

// NewMatchHandler returns an HTTP handler exposing ranked candidates via
// GET /api/match?mission=...&kind=pilot|drone.
func NewMatchHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var kind model.ResourceKind
		switch r.URL.Query().Get("kind") {
		case "pilot":
			kind = model.KindPilot
		case "drone":
			kind = model.KindDrone
		default:
			http.Error(w, "kind must be pilot or drone", http.StatusBadRequest)
			return
		}
		list, err := eng.MatchCandidates(r.URL.Query().Get("mission"), kind)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, list)
	})
}

// NewCostHandler returns an HTTP handler exposing mission cost via
// GET /api/cost?mission=....
func NewCostHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		cost, overrun, err := eng.ComputeCost(r.URL.Query().Get("mission"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, struct {
			Cost    float64 `json:"cost"`
			Overrun bool    `json:"overrun"`
		}{cost, overrun})
	})
}

// NewReassignHandler returns an HTTP handler running urgent reassignment
// via POST /api/reassign?mission=....
func NewReassignHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		plan, err := eng.FindUrgentReassignment(r.URL.Query().Get("mission"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, plan)
	})
}

type statusRequest struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

// NewStatusHandler returns an HTTP handler updating pilot or drone status
// via POST /api/status.
func NewStatusHandler(eng *engine.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var in statusRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var err error
		switch in.Kind {
		case "pilot":
			err = eng.SetPilotStatus(in.ID, in.Status)
		case "drone":
			err = eng.SetDroneStatus(in.ID, in.Status)
		default:
			http.Error(w, "kind must be pilot or drone", http.StatusBadRequest)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// NewMux assembles all engine routes. Mutating routes require an
// Authorization header with "Bearer <token>" when token is non-empty.
func NewMux(eng *engine.Engine, token string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/roster", NewRosterHandler(eng))
	mux.Handle("/api/roster/summary", NewSummaryHandler(eng))
	mux.Handle("/api/conflicts", NewConflictHandler(eng))
	mux.Handle("/api/match", NewMatchHandler(eng))
	mux.Handle("/api/cost", NewCostHandler(eng))
	mux.Handle("/api/assignments", withAuth(token, NewAssignmentHandler(eng)))
	mux.Handle("/api/reassign", withAuth(token, NewReassignHandler(eng)))
	mux.Handle("/api/status", withAuth(token, NewStatusHandler(eng)))
	return mux
}

func withAuth(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrAmbiguousIdentity), errors.Is(err, model.ErrInvalidDateRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
