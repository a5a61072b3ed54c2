package services

import (
	"github.com/SscSPs/fee_management_app/internal/core/billing"
	"github.com/SscSPs/fee_management_app/internal/core/ports"
	portsrepo "github.com/SscSPs/fee_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_management_app/internal/core/ports/services"
	"github.com/SscSPs/fee_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher ports.EventPublisher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Challan: NewChallanService(
			repos.ConsumerRepo,
			repos.ChallanRepo,
			repos.GenerationRepo,
			WithEventPublisher(publisher),
			WithBatchSize(cfg.ChallanBatchSize),
			WithGeneratorOptions(billing.Options{
				DueDay:      cfg.ChallanDueDay,
				MaxAttempts: cfg.ChallanNoMaxAttempts,
			}),
		),
		Auth: NewAuthService(cfg),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ChallanSvcFacade = (*challanService)(nil)
	_ portssvc.AuthSvc          = (*authService)(nil)
)
