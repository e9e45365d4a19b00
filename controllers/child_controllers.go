package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/catering-app/models"
	"github.com/yeremiapane/catering-app/utils"
)

// ChildController adalah CRUD tipis untuk daftar anak milik satu parent.
type ChildController struct {
	DB *gorm.DB
}

func NewChildController(db *gorm.DB) *ChildController {
	return &ChildController{DB: db}
}

func (cc *ChildController) GetChildren(c *gin.Context) {
	userID := currentUserID(c)

	var children []models.Child
	if err := cc.DB.Where("user_id = ?", userID).Find(&children).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Children list", children)
}

func (cc *ChildController) CreateChild(c *gin.Context) {
	type request struct {
		Name      string `json:"name" binding:"required"`
		ClassName string `json:"class_name"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	child := models.Child{
		UserID:    currentUserID(c),
		Name:      req.Name,
		ClassName: req.ClassName,
	}
	if err := cc.DB.Create(&child).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Child created", child)
}

func (cc *ChildController) UpdateChild(c *gin.Context) {
	childID := c.Param("child_id")
	userID := currentUserID(c)

	var child models.Child
	if err := cc.DB.Where("id = ? AND user_id = ?", childID, userID).First(&child).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("child not found"))
		return
	}

	type request struct {
		Name      *string `json:"name"`
		ClassName *string `json:"class_name"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		child.Name = *req.Name
	}
	if req.ClassName != nil {
		child.ClassName = *req.ClassName
	}
	if err := cc.DB.Save(&child).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Child updated", child)
}

func (cc *ChildController) DeleteChild(c *gin.Context) {
	childID := c.Param("child_id")
	userID := currentUserID(c)

	res := cc.DB.Where("id = ? AND user_id = ?", childID, userID).Delete(&models.Child{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("child not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Child deleted", gin.H{"child_id": childID})
}
