package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	customerDto "github.com/nitrodesk/nitrodesk/internal/application/customer/dto"
	"github.com/nitrodesk/nitrodesk/internal/shared/errors"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
	"github.com/nitrodesk/nitrodesk/internal/shared/utils"
)

type CustomerHandler struct {
	service customerService
	logger  logger.Interface
}

func NewCustomerHandler(service customerService, logger logger.Interface) *CustomerHandler {
	return &CustomerHandler{service: service, logger: logger}
}

// ListCustomers godoc
// @Summary List customers
// @Description Customers newest first with derived expiry fields. Pagination totals are returned in the X-Total-Count, X-Page and X-Page-Size headers.
// @Tags customers
// @Produce json
// @Param status query string false "ACTIVE, EXPIRED, CANCELLED or ALL"
// @Param search query string false "Substring of the username or discord id"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=[]customerDto.CustomerResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var req customerDto.ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Page-Size", strconv.Itoa(result.PageSize))
	utils.SuccessResponse(c, http.StatusOK, "", result.Customers)
}

// GetCustomer godoc
// @Summary Get customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} utils.APIResponse{data=customerDto.CustomerResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateCustomer godoc
// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Admin performing the change"
// @Param request body customerDto.CreateCustomerRequest true "Customer"
// @Success 201 {object} utils.APIResponse{data=customerDto.CustomerResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse "discordId already registered"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customerDto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create customer", "error", err)
		respondBindError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Customer created successfully")
}

// UpdateCustomer godoc
// @Summary Update customer
// @Description Partial update. The id comes from the path or, on PUT /customers, from the body.
// @Tags customers
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Admin performing the change"
// @Param id path string true "Customer ID"
// @Param request body customerDto.UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=customerDto.CustomerResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req customerDto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update customer", "error", err)
		respondBindError(c, err)
		return
	}
	if id := resourceID(c); id != "" {
		req.ID = id
	}

	result, err := h.service.Update(c.Request.Context(), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Customer updated successfully", result)
}

// DeleteCustomer godoc
// @Summary Delete customer
// @Description The id comes from the path or, on DELETE /customers, from ?id=. Notification history is kept.
// @Tags customers
// @Produce json
// @Param X-Actor-ID header string false "Admin performing the change"
// @Param id path string true "Customer ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id := resourceID(c)
	if id == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("customer id is required"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Customer deleted successfully", nil)
}

// RenewCustomer godoc
// @Summary Renew customer
// @Description Extends the subscription by months from its end date, or from now when it already lapsed.
// @Tags customers
// @Accept json
// @Produce json
// @Param X-Actor-ID header string false "Admin performing the change"
// @Param id path string true "Customer ID"
// @Param request body customerDto.RenewCustomerRequest true "Months to add"
// @Success 200 {object} utils.APIResponse{data=customerDto.CustomerResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /customers/{id}/renew [post]
func (h *CustomerHandler) RenewCustomer(c *gin.Context) {
	var req customerDto.RenewCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Renew(c.Request.Context(), c.Param("id"), req, actorID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Customer renewed successfully", result)
}
