package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"shipment-route-service/internal/api/dto"
	"shipment-route-service/internal/api/respond"
	"shipment-route-service/internal/domain"
	"shipment-route-service/internal/platform/apperr"
	"shipment-route-service/internal/ports"
)

// activeConstraintsQuery pulls every active constraint definition.
const activeConstraintsQuery = `{:find [(pull ?c [*])]
 :where [[?c :constraint/id _]
         [?c :constraint/active? true]]}`

// ConstraintHandler manages routing-constraint definitions in the fact
// store. Definitions are append-only; new facts supersede old ones.
type ConstraintHandler struct {
	Facts  ports.FactStore
	Logger *slog.Logger
}

func (h *ConstraintHandler) List(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	results, err := h.Facts.Query(r.Context(), activeConstraintsQuery)
	if err != nil {
		h.Logger.Error("list constraints failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	respond.JSON(w, r, http.StatusOK, dto.ConstraintListResponse{
		Data:  results,
		Total: len(results),
	})
}

func (h *ConstraintHandler) Create(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var body dto.CreateConstraintRequest
	if err := decodeBody(r, &body); err != nil {
		respond.Error(w, r, err)
		return
	}

	if body.Name == "" || body.ConstraintType == "" {
		respond.ErrorKind(w, r, apperr.KindValidation, "name and constraintType are required")
		return
	}

	isHard := true
	if body.IsHard != nil {
		isHard = *body.IsHard
	}
	priority := 100
	if body.Priority != nil {
		priority = *body.Priority
	}

	constraint := domain.Constraint{
		ID:          uuid.NewString(),
		Name:        body.Name,
		Type:        body.ConstraintType,
		Description: body.Description,
		IsHard:      isHard,
		Active:      true,
		Priority:    priority,
		Params:      body.Params,
		DatalogRule: body.DatalogRule,
		CreatedAt:   time.Now(),
	}

	if err := h.Facts.Put(r.Context(), constraint.Document()); err != nil {
		h.Logger.Error("create constraint failed", "err", err)
		respond.Error(w, r, apperr.Wrap(apperr.KindDatabase, err))
		return
	}

	respond.JSON(w, r, http.StatusCreated, dto.CreateConstraintResponse{
		ID:             constraint.ID,
		Name:           constraint.Name,
		ConstraintType: body.ConstraintType,
		Description:    constraint.Description,
		IsHard:         constraint.IsHard,
		Priority:       constraint.Priority,
		Params:         constraint.Params,
		DatalogRule:    constraint.DatalogRule,
	})
}
