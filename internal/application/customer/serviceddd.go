package customer

import (
	"context"

	"github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/application/customer/usecases"
	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	"github.com/nitrodesk/nitrodesk/internal/domain/notification"
	"github.com/nitrodesk/nitrodesk/internal/shared/biztime"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// ServiceDDD aggregates the customer use cases.
type ServiceDDD struct {
	createUC *usecases.CreateCustomerUseCase
	getUC    *usecases.GetCustomerUseCase
	listUC   *usecases.ListCustomersUseCase
	updateUC *usecases.UpdateCustomerUseCase
	deleteUC *usecases.DeleteCustomerUseCase
	renewUC  *usecases.RenewCustomerUseCase
}

func NewServiceDDD(
	customerRepo customer.Repository,
	notifRepo notification.Repository,
	settings usecases.SettingsReader,
	recorder usecases.ActivityRecorder,
	notifier usecases.RenewalNotifier,
	clock biztime.Clock,
	logger logger.Interface,
) *ServiceDDD {
	return &ServiceDDD{
		createUC: usecases.NewCreateCustomerUseCase(customerRepo, notifRepo, settings, recorder, clock, logger),
		getUC:    usecases.NewGetCustomerUseCase(customerRepo, notifRepo, settings, clock, logger),
		listUC:   usecases.NewListCustomersUseCase(customerRepo, notifRepo, settings, clock, logger),
		updateUC: usecases.NewUpdateCustomerUseCase(customerRepo, notifRepo, settings, recorder, clock, logger),
		deleteUC: usecases.NewDeleteCustomerUseCase(customerRepo, recorder, logger),
		renewUC:  usecases.NewRenewCustomerUseCase(customerRepo, notifRepo, settings, recorder, notifier, clock, logger),
	}
}

func (s *ServiceDDD) Create(ctx context.Context, req dto.CreateCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	return s.createUC.Execute(ctx, req, actorID)
}

func (s *ServiceDDD) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	return s.getUC.Execute(ctx, id)
}

func (s *ServiceDDD) List(ctx context.Context, req dto.ListCustomersRequest) (*dto.ListCustomersResponse, error) {
	return s.listUC.Execute(ctx, req)
}

func (s *ServiceDDD) Update(ctx context.Context, req dto.UpdateCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	return s.updateUC.Execute(ctx, req, actorID)
}

func (s *ServiceDDD) Delete(ctx context.Context, id, actorID string) error {
	return s.deleteUC.Execute(ctx, id, actorID)
}

func (s *ServiceDDD) Renew(ctx context.Context, id string, req dto.RenewCustomerRequest, actorID string) (*dto.CustomerResponse, error) {
	return s.renewUC.Execute(ctx, id, req, actorID)
}
