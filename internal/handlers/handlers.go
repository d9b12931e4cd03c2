package handlers

import (
	"github.com/outpost-tools/rostering-service/internal/database"
	"github.com/outpost-tools/rostering-service/internal/handlers/public"
	"github.com/outpost-tools/rostering-service/internal/service"
	"go.uber.org/zap"
)

// Handlers bundles all HTTP handlers of the service.
type Handlers struct {
	Health *HealthHandler
	Plan   *public.PlanHandler
}

// HandlerDependencies carries everything needed to construct Handlers.
type HandlerDependencies struct {
	PlanService *service.PlanService
	DB          *database.DB
	Redis       *database.RedisClient
	Logger      *zap.Logger
}

func NewHandlers(deps *HandlerDependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.DB, deps.Redis),
		Plan:   public.NewPlanHandler(deps.PlanService, deps.Logger),
	}
}
