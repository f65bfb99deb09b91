package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"chameleon-scheduler/internal/api/dto"
	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/generator"
)

// defaultTriesPerAction mirrors the tries_per_action the teacher's old
// route planner hard-coded for its nearest-neighbor search: a ceiling on
// how many candidate checkpoints/deliveries GetScheduleNeighbour samples
// before giving up on a mutation attempt.
const defaultTriesPerAction = 200

// ScheduleHandler serves a running demo of the local-search engine over
// HTTP: a single generator and its current schedule, advanced one
// neighbor step at a time. It is not meant to back multiple concurrent
// planning runs; cmd/simulate is the entry point for batch/offline runs.
type ScheduleHandler struct {
	mu  sync.Mutex
	Gen *generator.Generator
	cur *domain.Schedule
}

// NewScheduleHandler wraps gen, starting from an empty schedule.
func NewScheduleHandler(gen *generator.Generator) *ScheduleHandler {
	return &ScheduleHandler{Gen: gen, cur: gen.EmptySchedule()}
}

func (h *ScheduleHandler) view() dto.ScheduleView {
	tuples := h.Gen.ToListOfTuples(h.cur)
	events := make([]dto.ScheduleEvent, 0, len(tuples))
	for _, t := range tuples {
		events = append(events, dto.ScheduleEvent{
			TruckID:    t.TruckID,
			Time:       int64(t.Time),
			TerminalID: t.TerminalID,
			CargoID:    t.CargoID,
			PickedUp:   t.PickedUp,
		})
	}
	return dto.ScheduleView{Events: events, Scores: h.Gen.Scores(h.cur)}
}

// Get handles GET /schedule: the current state, with no mutation.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, r, http.StatusOK, h.view())
}

// Step handles POST /schedule/step: runs one GetScheduleNeighbour draw
// against the current schedule and returns the result.
func (h *ScheduleHandler) Step(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tries := defaultTriesPerAction
	if r.ContentLength != 0 {
		var req dto.StepRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.TriesPerAction > 0 {
			tries = req.TriesPerAction
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur = h.Gen.GetScheduleNeighbour(h.cur, tries)
	writeJSON(w, r, http.StatusOK, h.view())
}

// Reset handles POST /schedule/reset: discards the current schedule and
// starts over from empty.
func (h *ScheduleHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur = h.Gen.EmptySchedule()
	writeJSON(w, r, http.StatusOK, h.view())
}

// Terminals handles GET /terminals: every terminal id referenced by a
// surviving booking, the set a caller would feed a driving-time matrix
// builder for.
func (h *ScheduleHandler) Terminals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string][]string{"terminals": h.Gen.GetTerminalIDs()})
}
