package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/shift-planner/internal/config"
	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type WorkerRepository interface {
	CreateWorker(worker *domain.Worker) error
	GetAllWorkers() ([]*domain.Worker, error)
	GetWorkerByID(id int64) (*domain.Worker, error)
	UpdateWorker(worker *domain.Worker) error
	DeleteWorker(id int64) error
}

// MailPublisher 由 *amqp.Channel 实现
type MailPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RosterLocker 返回的函数用于释放锁
type RosterLocker interface {
	Lock(ctx context.Context) (func(), error)
}

type Handler struct {
	validate            *validator.Validate
	config              *config.Config
	repository          WorkerRepository
	translator          ut.Translator
	mailPublisher       MailPublisher
	locker              RosterLocker
	managerPasswordHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo WorkerRepository, publisher MailPublisher, locker RosterLocker) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerScheduleValidations(validate, trans); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Manager.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:            validate,
		config:              cfg,
		repository:          repo,
		translator:          trans,
		mailPublisher:       publisher,
		locker:              locker,
		managerPasswordHash: passwordHash,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/my-info", h.GetMyInfo)

		r.Route("/workers", func(r chi.Router) {
			r.Post("/", h.CreateWorker)
			r.Get("/", h.GetAllWorkers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workerInfo)
				r.Get("/", h.GetWorker)
				r.Patch("/", h.UpdateWorker)
				r.Delete("/", h.DeleteWorker)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Post("/generate", h.GenerateSchedule)
		})
	})
}
