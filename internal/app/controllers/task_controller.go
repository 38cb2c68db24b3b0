package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blackstanton/punchclock/internal/app/models"
	"github.com/blackstanton/punchclock/internal/app/models/dto"
	"github.com/blackstanton/punchclock/internal/app/services"
	"github.com/blackstanton/punchclock/internal/middleware"
)

// TaskController handles task catalog endpoints
type TaskController struct {
	taskService *services.TaskService
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService *services.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// CreateTask handles task creation
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.TaskRequest true "Task information"
// @Success 201 {object} dto.APIResponse{data=models.Task}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	var req dto.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid task data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	task := models.Task{Name: req.Name}
	if err := c.taskService.Create(ctx, &task); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(task))
}

// GetTaskByID retrieves a task by ID
// @Summary Get task by ID
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.APIResponse{data=models.Task}
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{id} [get]
func (c *TaskController) GetTaskByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	task, err := c.taskService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(task))
}

// GetAllTasks retrieves the task catalog
// @Summary Get all tasks
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Task}
// @Router /tasks [get]
func (c *TaskController) GetAllTasks(ctx *gin.Context) {
	tasks, err := c.taskService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tasks))
}

// UpdateTask overwrites an existing task
// @Summary Update task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body dto.TaskRequest true "Task information"
// @Success 200 {object} dto.APIResponse{data=models.Task}
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid task data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	task := models.Task{ID: id, Name: req.Name}
	if err := c.taskService.Update(ctx, &task); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(task))
}

// DeleteTask removes a task
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.taskService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"deleted": id}))
}
