package controller

import (
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (ctl *ReviewController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	courseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid course id")
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	review, err := ctl.ReviewService.Create(claims.UserID, uint(courseID), req.Rating, req.Comment)
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Created(c, review)
}

func (ctl *ReviewController) ListByCourse(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid course id")
		return
	}

	reviews, err := ctl.ReviewService.ListByCourse(uint(courseID))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, reviews)
}
