package mappers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nitrodesk/nitrodesk/internal/domain/customer"
	vo "github.com/nitrodesk/nitrodesk/internal/domain/customer/valueobjects"
	"github.com/nitrodesk/nitrodesk/internal/infrastructure/persistence/models"
)

type CustomerMapper interface {
	ToDomain(model *models.CustomerModel) (*customer.Customer, error)
	ToModel(c *customer.Customer) *models.CustomerModel
	ToDomainList(list []*models.CustomerModel) ([]*customer.Customer, error)
}

type CustomerMapperImpl struct{}

func NewCustomerMapper() CustomerMapper {
	return &CustomerMapperImpl{}
}

func (m *CustomerMapperImpl) ToDomain(model *models.CustomerModel) (*customer.Customer, error) {
	if model == nil {
		return nil, nil
	}

	var price *decimal.Decimal
	if model.Price.Valid {
		p := model.Price.Decimal
		price = &p
	}

	c, err := customer.ReconstructCustomer(
		model.ID,
		model.DiscordID,
		model.DiscordUsername,
		model.DiscordAvatar,
		vo.NitroType(model.NitroType),
		model.StartDate,
		model.DurationMonths,
		price,
		model.Notes,
		vo.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct customer %s: %w", model.ID, err)
	}
	return c, nil
}

func (m *CustomerMapperImpl) ToModel(c *customer.Customer) *models.CustomerModel {
	if c == nil {
		return nil
	}

	model := &models.CustomerModel{
		ID:              c.ID(),
		DiscordID:       c.DiscordID(),
		DiscordUsername: c.DiscordUsername(),
		DiscordAvatar:   c.DiscordAvatar(),
		NitroType:       c.NitroType().String(),
		StartDate:       c.StartDate(),
		DurationMonths:  c.DurationMonths(),
		Notes:           c.Notes(),
		Status:          c.Status().String(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
	if p := c.Price(); p != nil {
		model.Price = decimal.NullDecimal{Decimal: *p, Valid: true}
	}
	return model
}

func (m *CustomerMapperImpl) ToDomainList(list []*models.CustomerModel) ([]*customer.Customer, error) {
	out := make([]*customer.Customer, 0, len(list))
	for _, model := range list {
		c, err := m.ToDomain(model)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
