package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

func (h *Handler) GetAllWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.repository.GetAllWorkers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工列表成功", workers)
}

func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string            `json:"name" validate:"required,notblank,max=64"`
		Preferences map[string]string `json:"preferences" validate:"dive,keys,day,endkeys,preference"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker := &domain.Worker{
		Name:        strings.TrimSpace(req.Name),
		Preferences: make(map[domain.Day]domain.ShiftKind),
	}
	if err := mergePreferences(worker.Preferences, req.Preferences); err != nil {
		h.badRequest(w, r, err)
		return
	}

	unlock, ok := h.acquireRosterLock(w, r)
	if !ok {
		return
	}
	defer unlock()

	if err := h.repository.CreateWorker(worker); err != nil {
		h.handleWorkerWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "员工创建成功", worker)
}

func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)
	h.successResponse(w, r, "获取员工信息成功", worker)
}

func (h *Handler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        *string           `json:"name" validate:"omitempty,notblank,max=64"`
		Preferences map[string]string `json:"preferences" validate:"dive,keys,day,endkeys,preference"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	if req.Name != nil {
		worker.Name = strings.TrimSpace(*req.Name)
	}
	if worker.Preferences == nil {
		worker.Preferences = make(map[domain.Day]domain.ShiftKind)
	}
	if err := mergePreferences(worker.Preferences, req.Preferences); err != nil {
		h.badRequest(w, r, err)
		return
	}

	unlock, ok := h.acquireRosterLock(w, r)
	if !ok {
		return
	}
	defer unlock()

	if err := h.repository.UpdateWorker(worker); err != nil {
		h.handleWorkerWriteError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新员工信息成功", worker)
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	unlock, ok := h.acquireRosterLock(w, r)
	if !ok {
		return
	}
	defer unlock()

	if err := h.repository.DeleteWorker(worker.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "员工不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}

func (h *Handler) handleWorkerWriteError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		switch {
		case pgErr.ConstraintName == "workers_name_key":
			h.badRequest(w, r, errors.New("员工姓名已存在"))
		default:
			h.internalServerError(w, r, err)
		}
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "更新员工信息失败，请重试")
	default:
		h.internalServerError(w, r, err)
	}
}
