package controller

import (
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

func (ctl *CourseController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid course id")
		return
	}

	course, err := ctl.CourseService.GetByID(uint(id))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, course)
}

func (ctl *CourseController) Publish(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid course id")
		return
	}

	course, err := ctl.CourseService.Publish(claims.UserID, uint(id))
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, course)
}
