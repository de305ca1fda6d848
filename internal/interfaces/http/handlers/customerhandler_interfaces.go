package handlers

import (
	"context"

	customerDto "github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
)

// customerService is the subset of customer.ServiceDDD used by CustomerHandler.
type customerService interface {
	Create(ctx context.Context, req customerDto.CreateCustomerRequest, actorID string) (*customerDto.CustomerResponse, error)
	Get(ctx context.Context, id string) (*customerDto.CustomerResponse, error)
	List(ctx context.Context, req customerDto.ListCustomersRequest) (*customerDto.ListCustomersResponse, error)
	Update(ctx context.Context, req customerDto.UpdateCustomerRequest, actorID string) (*customerDto.CustomerResponse, error)
	Delete(ctx context.Context, id, actorID string) error
	Renew(ctx context.Context, id string, req customerDto.RenewCustomerRequest, actorID string) (*customerDto.CustomerResponse, error)
}
