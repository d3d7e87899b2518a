package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpaccess/backend/internal/services"
)

type AddressHandler struct {
	addressService services.AddressService
}

func NewAddressHandler(addressService services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (ah *AddressHandler) UpsertForPractice(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	var in services.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	address, _, err := ah.addressService.UpsertForPractice(c.Request.Context(), practiceID, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, address)
}

func (ah *AddressHandler) GetByPracticeID(c *gin.Context) {
	practiceID, err := uuidQuery(c, "practice_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return
	}
	address, err := ah.addressService.GetByPracticeID(c.Request.Context(), practiceID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, address)
}

func (ah *AddressHandler) GetByPracticeName(c *gin.Context) {
	name := c.Query("practice_name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "invalid_param", errMissingParam("practice_name"))
		return
	}
	address, err := ah.addressService.GetByPracticeName(c.Request.Context(), name)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, address)
}

func (ah *AddressHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	addresses, err := ah.addressService.List(c.Request.Context(), offset, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, addresses)
}
