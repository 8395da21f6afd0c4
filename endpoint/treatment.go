package endpoint

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthtrack/treatment-tracker/config"
	"github.com/healthtrack/treatment-tracker/middleware"
	"github.com/healthtrack/treatment-tracker/model"
	"github.com/healthtrack/treatment-tracker/util"
)

// listOrder shows most recent treatments first; created_at breaks ties
// between same-day records.
const listOrder = "treatment_date DESC, created_at DESC"

// CreateTreatment godoc
// @Summary      Create a treatment record
// @Description  Validate and persist a new treatment record
// @Tags         Treatment
// @Accept       json
// @Produce      json
// @Param        treatment body model.TreatmentInput true "Treatment to create"
// @Success      201 {object} model.Treatment "Created record"
// @Failure      400 {object} util.ErrorResponse "Validation failed"
// @Failure      500 {object} util.ErrorResponse "Server error"
// @Router       /treatments [post]
func CreateTreatment(c *gin.Context) {
	input := model.TreatmentInput{}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.CallUserError(c, "No data provided")
		return
	}

	if violations := input.Validate(); len(violations) > 0 {
		util.CallValidationError(c, violations)
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, errors.New("database connection not available"))
		return
	}

	treatment := input.Record()
	treatment.CreatedAt = time.Now().In(config.Location())
	if err := db.Create(&treatment).Error; err != nil {
		util.CallServerError(c, err)
		return
	}

	util.CallCreated(c, treatment)
}

// ListTreatments godoc
// @Summary      List all treatment records
// @Description  Get every treatment record, most recent treatment date first
// @Tags         Treatment
// @Produce      json
// @Success      200 {array} model.Treatment "All records"
// @Failure      500 {object} util.ErrorResponse "Server error"
// @Router       /treatments [get]
func ListTreatments(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, errors.New("database connection not available"))
		return
	}

	treatments := []model.Treatment{}
	if err := db.Order(listOrder).Find(&treatments).Error; err != nil {
		util.CallServerError(c, err)
		return
	}

	util.CallSuccessOK(c, treatments)
}

// DeleteTreatment godoc
// @Summary      Delete a treatment record
// @Description  Permanently remove the treatment record with the given id
// @Tags         Treatment
// @Produce      json
// @Param        id path int true "Treatment ID"
// @Success      200 {object} util.MessageResponse "Deleted"
// @Failure      400 {object} util.ErrorResponse "Invalid id"
// @Failure      404 {object} util.ErrorResponse "Treatment not found"
// @Failure      500 {object} util.ErrorResponse "Server error"
// @Router       /treatments/{id} [delete]
func DeleteTreatment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		util.CallUserError(c, "Invalid treatment ID")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, errors.New("database connection not available"))
		return
	}

	var treatment model.Treatment
	if err := db.First(&treatment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, "Treatment not found")
			return
		}
		util.CallServerError(c, err)
		return
	}

	if err := db.Delete(&treatment).Error; err != nil {
		util.CallServerError(c, err)
		return
	}

	util.CallMessageOK(c, "Treatment deleted successfully")
}
