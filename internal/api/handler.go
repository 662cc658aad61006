package api

import (
	"log/slog"

	"github.com/shaiso/Mensa/internal/mq"
	"github.com/shaiso/Mensa/internal/registry"
	"github.com/shaiso/Mensa/internal/repo"
	"github.com/shaiso/Mensa/internal/selection"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	selector  *selection.Selector
	registry  *registry.Registry
	siteRepo  *repo.SiteRepo
	orderRepo *repo.OrderRepo
	accounts  *repo.AccountRepo
	runners   *repo.RunnerRepo
	tokens    *repo.TokenRepo
	publisher *mq.Publisher
	logger    *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Selector  *selection.Selector
	Registry  *registry.Registry
	SiteRepo  *repo.SiteRepo
	OrderRepo *repo.OrderRepo
	Accounts  *repo.AccountRepo
	Runners   *repo.RunnerRepo
	Tokens    *repo.TokenRepo
	Publisher *mq.Publisher // опционально: без него события не публикуются
	Logger    *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		selector:  cfg.Selector,
		registry:  cfg.Registry,
		siteRepo:  cfg.SiteRepo,
		orderRepo: cfg.OrderRepo,
		accounts:  cfg.Accounts,
		runners:   cfg.Runners,
		tokens:    cfg.Tokens,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
	}
}
