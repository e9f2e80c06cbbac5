package controller

import (
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// EnrollmentController exposes the student's progress tracking API. All
// routes require a student token; ownership is enforced in the service so a
// student can only touch their own enrollments.
type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type lessonCompletedRequest struct {
	LessonID uint   `json:"lessonId" binding:"required"`
	Title    string `json:"title" binding:"required,max=255"`
}

type lessonIncompleteRequest struct {
	LessonID uint `json:"lessonId" binding:"required"`
}

type quizSubmissionRequest struct {
	QuizID  uint                      `json:"quizId" binding:"required"`
	Answers []service.QuizAnswerInput `json:"answers" binding:"required"`
	Score   float64                   `json:"score" binding:"min=0,max=100"`
	Passed  bool                      `json:"passed"`
}

func enrollmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid enrollment id")
		return 0, false
	}
	return uint(id), true
}

func (ctl *EnrollmentController) List(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	enrollments, err := ctl.EnrollmentService.ListByStudent(claims.UserID)
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, enrollments)
}

func (ctl *EnrollmentController) GetProgress(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id, ok := enrollmentID(c)
	if !ok {
		return
	}

	progress, err := ctl.EnrollmentService.GetProgress(claims.UserID, id)
	if err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, progress)
}

func (ctl *EnrollmentController) CompleteLesson(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id, ok := enrollmentID(c)
	if !ok {
		return
	}

	var req lessonCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.EnrollmentService.MarkLessonCompleted(claims.UserID, id, req.LessonID, req.Title); err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, nil)
}

func (ctl *EnrollmentController) UncompleteLesson(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id, ok := enrollmentID(c)
	if !ok {
		return
	}

	var req lessonIncompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.EnrollmentService.MarkLessonIncomplete(claims.UserID, id, req.LessonID); err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, nil)
}

func (ctl *EnrollmentController) SubmitQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id, ok := enrollmentID(c)
	if !ok {
		return
	}

	var req quizSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.EnrollmentService.SubmitQuiz(claims.UserID, id, req.QuizID, req.Answers, req.Score, req.Passed); err != nil {
		util.DomainError(c, err)
		return
	}
	util.Created(c, nil)
}

func (ctl *EnrollmentController) ResubmitQuiz(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id, ok := enrollmentID(c)
	if !ok {
		return
	}

	var req quizSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.EnrollmentService.ResubmitQuiz(claims.UserID, id, req.QuizID, req.Answers, req.Score, req.Passed); err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, nil)
}

func (ctl *EnrollmentController) DeleteQuizSubmission(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id, ok := enrollmentID(c)
	if !ok {
		return
	}

	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid quiz id")
		return
	}

	if err := ctl.EnrollmentService.DeleteQuizSubmission(claims.UserID, id, uint(quizID)); err != nil {
		util.DomainError(c, err)
		return
	}
	util.Success(c, nil)
}
