package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
	"github.com/sysu-ecnc-dev/shift-planner/internal/lock"
	"github.com/sysu-ecnc-dev/shift-planner/internal/render"
	"github.com/sysu-ecnc-dev/shift-planner/internal/scheduler"
)

type generateScheduleResponse struct {
	Schedule *domain.WeeklySchedule `json:"schedule"`
	Rows     []domain.ScheduleRow   `json:"rows"`
	Warnings []string               `json:"warnings"`
	Seed     int64                  `json:"seed"`
}

// acquireRosterLock 获取名册锁，失败时已经写好了响应
func (h *Handler) acquireRosterLock(w http.ResponseWriter, r *http.Request) (func(), bool) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	unlock, err := h.locker.Lock(ctx)
	if err != nil {
		switch {
		case errors.Is(err, lock.ErrLocked):
			h.errorResponse(w, r, "名册正在被其他操作占用，请稍后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return nil, false
	}

	return unlock, true
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed *int64 `json:"seed"`
	}

	// 请求体可以为空
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	unlock, ok := h.acquireRosterLock(w, r)
	if !ok {
		return
	}
	defer unlock()

	roster, err := h.repository.GetAllWorkers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	s, err := scheduler.New(h.config.SchedulingParameters(), scheduler.NewRandomSource(seed), slog.Default())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ws, err := s.Schedule(roster)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrEmptyRoster):
			h.errorResponse(w, r, "名册为空，无法排班")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	resp := generateScheduleResponse{
		Schedule: ws,
		Rows:     render.Rows(ws),
		Warnings: render.Warnings(ws),
		Seed:     seed,
	}

	// 邮件发送失败不影响排班结果
	if err := h.publishScheduleMail(resp); err != nil {
		slog.Error("无法发送排班结果邮件", "scheduleID", ws.ID, "error", err)
	}

	h.successResponse(w, r, "排班成功", resp)
}

func (h *Handler) publishScheduleMail(resp generateScheduleResponse) error {
	mailMessage := domain.MailMessage{
		Type: domain.MailTypeScheduleGenerated,
		To:   h.config.Manager.Email,
		Data: domain.ScheduleGeneratedMailData{
			ManagerName: h.config.Manager.FullName,
			ScheduleID:  resp.Schedule.ID,
			GeneratedAt: resp.Schedule.GeneratedAt.Format(time.DateTime),
			Rows:        resp.Rows,
			Warnings:    resp.Warnings,
		},
	}

	// 对邮件进行序列化
	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	// 将邮件发送到消息队列
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailPublisher.PublishWithContext(
		ctx,
		"",
		h.config.RabbitMQ.Queue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        emailData,
		},
	)
}
