package analysis

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/analysis"
	"github.com/finwick/nexus/internal/engine"
)

type Handler struct {
	svc *analysis.Service
}

func NewHandler(svc *analysis.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/transactions", h.addTransactions)
	r.Get("/{id}/results", h.results)
	r.Post("/{id}/recalculate", h.recalculate)
	r.Put("/{id}/presence", h.setPresence)
	r.Delete("/{id}/presence/{state}", h.removePresence)
	r.Post("/{id}/vda", h.calculateVDA)
	r.Delete("/{id}/vda", h.disableVDA)
}

func analysisID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createAnalysisRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, toAnalysisResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]analysisResponse, 0, len(analyses))
	for _, a := range analyses {
		out = append(out, toAnalysisResponse(a))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toAnalysisResponse(a))
}

type transactionDTO struct {
	State        string           `json:"state"`
	Date         string           `json:"date"`
	Gross        decimal.Decimal  `json:"gross"`
	ExemptAmount *decimal.Decimal `json:"exempt_amount,omitempty"`
	TaxFlag      *string          `json:"tax_flag,omitempty"`
	Channel      string           `json:"channel,omitempty"`
}

type addTransactionsRequest struct {
	Transactions []transactionDTO `json:"transactions"`
}

func (h *Handler) addTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addTransactionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inputs := make([]analysis.TransactionInput, 0, len(req.Transactions))

	for _, dto := range req.Transactions {
		date, err := time.Parse(time.DateOnly, dto.Date)
		if err != nil {
			http.Error(w, "invalid date: "+dto.Date, http.StatusBadRequest)
			return
		}

		inputs = append(inputs, analysis.TransactionInput{
			State:        dto.State,
			Date:         date,
			Gross:        dto.Gross,
			ExemptAmount: dto.ExemptAmount,
			TaxFlag:      dto.TaxFlag,
			Channel:      dto.Channel,
		})
	}

	outcome, err := h.svc.AddTransactions(r.Context(), id, inputs)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	writeJSON(w, http.StatusCreated, toOutcomeResponse(outcome))
}

func (h *Handler) results(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	results, err := h.svc.Results(r.Context(), id)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	out := make([]resultResponse, 0, len(results))
	for _, res := range results {
		out = append(out, toResultResponse(res))
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) recalculate(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	outcome, err := h.svc.Recalculate(r.Context(), id)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toOutcomeResponse(outcome))
}

type presenceRequest struct {
	State            string  `json:"state"`
	PresenceDate     string  `json:"presence_date"`
	Justification    string  `json:"justification"`
	RegistrationDate *string `json:"registration_date,omitempty"`
	PermitID         string  `json:"permit_id,omitempty"`
}

func (h *Handler) setPresence(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req presenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := time.Parse(time.DateOnly, req.PresenceDate)
	if err != nil {
		http.Error(w, "invalid presence_date", http.StatusBadRequest)
		return
	}

	params := analysis.PresenceParams{
		State:         req.State,
		PresenceDate:  date,
		Justification: req.Justification,
		PermitID:      req.PermitID,
	}

	if req.RegistrationDate != nil {
		reg, err := time.Parse(time.DateOnly, *req.RegistrationDate)
		if err != nil {
			http.Error(w, "invalid registration_date", http.StatusBadRequest)
			return
		}

		params.RegistrationDate = &reg
	}

	outcome, err := h.svc.SetPresence(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	writeJSON(w, http.StatusOK, toOutcomeResponse(outcome))
}

func (h *Handler) removePresence(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	outcome, err := h.svc.RemovePresence(r.Context(), id, chi.URLParam(r, "state"))
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toOutcomeResponse(outcome))
}

type vdaRequest struct {
	States []string `json:"states"`
}

func (h *Handler) calculateVDA(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req vdaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	scenario, err := h.svc.CalculateVDA(r.Context(), id, req.States)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrEmptySelection), errors.Is(err, engine.ErrUnknownSelection):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, analysis.ErrNotFound):
			http.Error(w, "analysis not found", http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusOK, toScenarioResponse(scenario))
}

func (h *Handler) disableVDA(w http.ResponseWriter, r *http.Request) {
	id, err := analysisID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DisableVDA(r.Context(), id); err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
