package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chameleon-scheduler/internal/api/dto"
	"chameleon-scheduler/internal/domain"
	"chameleon-scheduler/internal/generator"
)

func newTestGenerator(t *testing.T) *generator.Generator {
	t.Helper()
	terminals := map[string]generator.TerminalWindow{
		"A": {Open: 0, Close: 1000},
		"B": {Open: 0, Close: 1000},
	}
	trucks := map[string]generator.TruckInput{
		"T": {StartingTerminal: "A", MaxWeightKg: 100, MaxTEU: 10},
	}
	bookings := []generator.BookingInput{
		{
			CargoID: "c1", WeightKg: 10, TEU: 1,
			From: "A", To: "B",
			PickupOpenTime: 100, PickupCloseTime: 300,
			DropoffOpenTime: 500, DropoffCloseTime: 900,
		},
	}
	g, err := generator.New(terminals, trucks, bookings, 0, 1000)
	if err != nil {
		t.Fatalf("generator.New: %v", err)
	}
	if err := g.SetDrivingTimes(context.Background(), []string{"A", "B"},
		[][]domain.NonNegativeTimeDelta{{0, 100}, {100, 0}}); err != nil {
		t.Fatalf("SetDrivingTimes: %v", err)
	}
	g.Seed(0)
	return g
}

func TestScheduleHandlerGetReturnsEmptySchedule(t *testing.T) {
	h := NewScheduleHandler(newTestGenerator(t))

	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var view dto.ScheduleView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(view.Events) != 0 {
		t.Fatalf("got %d events on a fresh schedule, want 0", len(view.Events))
	}
}

func TestScheduleHandlerGetRejectsNonGet(t *testing.T) {
	h := NewScheduleHandler(newTestGenerator(t))

	req := httptest.NewRequest(http.MethodPost, "/schedule", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestScheduleHandlerStepMutatesCurrentSchedule(t *testing.T) {
	h := NewScheduleHandler(newTestGenerator(t))

	req := httptest.NewRequest(http.MethodPost, "/schedule/step", strings.NewReader(`{"tries_per_action": 500}`))
	rec := httptest.NewRecorder()
	h.Step(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	getRec := httptest.NewRecorder()
	h.Get(getRec, getReq)

	var view dto.ScheduleView
	if err := json.NewDecoder(getRec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// From an empty schedule only add-checkpoint can succeed, so one step
	// gives truck T a stop and the free-trucks score drops from 1 to 0.
	if view.Scores[1] != 0 {
		t.Fatalf("free_trucks score after one step = %v, want 0", view.Scores[1])
	}
}

func TestScheduleHandlerResetClearsState(t *testing.T) {
	h := NewScheduleHandler(newTestGenerator(t))

	stepReq := httptest.NewRequest(http.MethodPost, "/schedule/step", nil)
	h.Step(httptest.NewRecorder(), stepReq)

	resetReq := httptest.NewRequest(http.MethodPost, "/schedule/reset", nil)
	resetRec := httptest.NewRecorder()
	h.Reset(resetRec, resetReq)

	if resetRec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resetRec.Code)
	}

	var view dto.ScheduleView
	if err := json.NewDecoder(resetRec.Body).Decode(&view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(view.Events) != 0 {
		t.Fatalf("got %d events after reset, want 0", len(view.Events))
	}
}

func TestScheduleHandlerTerminalsListsAllIDs(t *testing.T) {
	h := NewScheduleHandler(newTestGenerator(t))

	req := httptest.NewRequest(http.MethodGet, "/terminals", nil)
	rec := httptest.NewRecorder()
	h.Terminals(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body["terminals"]) != 2 {
		t.Fatalf("got %d terminals, want 2: %v", len(body["terminals"]), body["terminals"])
	}
}
