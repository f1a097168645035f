package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/application/service"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/presentation/http/dto/response"
)

// AddressHandler handles address-book HTTP requests
type AddressHandler struct {
	addressService *service.AddressService
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List handles listing saved addresses
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.addressService.ListAddresses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Addresses retrieved successfully", addresses)
}

// Create handles saving a new address
func (h *AddressHandler) Create(c *gin.Context) {
	var req struct {
		Label        string  `json:"label" binding:"required"`
		CustomerName *string `json:"customer_name"`
		Address      string  `json:"address" binding:"required"`
		State        *string `json:"state"`
		StateCode    *string `json:"state_code"`
		GSTIN        *string `json:"gstin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	address, err := h.addressService.SaveAddress(c.Request.Context(), &entity.Address{
		Label:        req.Label,
		CustomerName: req.CustomerName,
		Address:      req.Address,
		State:        req.State,
		StateCode:    req.StateCode,
		GSTIN:        req.GSTIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Address saved successfully", address)
}

// Delete handles deleting a saved address
func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid address ID")
		return
	}

	if err := h.addressService.DeleteAddress(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
