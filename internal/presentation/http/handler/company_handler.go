package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"github.com/lnprasad/invoice-api/internal/presentation/http/dto/response"
)

// CompanyHandler serves the fixed seller letterhead profiles
type CompanyHandler struct{}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler() *CompanyHandler {
	return &CompanyHandler{}
}

// List handles listing the seller profiles
func (h *CompanyHandler) List(c *gin.Context) {
	response.OK(c, "Companies retrieved successfully", entity.AllProfiles())
}

// Get handles getting one seller profile by key
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := enum.ParseCompanyType(c.Param("key"))
	if err != nil {
		response.NotFound(c, "Company not found")
		return
	}

	response.OK(c, "Company retrieved successfully", entity.ProfileFor(company))
}
