package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blackstanton/punchclock/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	teacherController *controllers.TeacherController,
	studentController *controllers.StudentController,
	taskController *controllers.TaskController,
	punchController *controllers.PunchController,
) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	teachers := v1.Group("/teachers")
	{
		teachers.GET("", teacherController.GetAllTeachers)
		teachers.POST("", teacherController.CreateTeacher)
		teachers.GET("/:id", teacherController.GetTeacherByID)
		teachers.PUT("/:id", teacherController.UpdateTeacher)
		teachers.DELETE("/:id", teacherController.DeleteTeacher)
		teachers.GET("/:id/students", teacherController.GetTeacherStudents)
		teachers.POST("/:id/photo", teacherController.UploadTeacherPhoto)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.POST("", studentController.CreateStudent)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.GET("/:id/punches", studentController.GetStudentPunches)
	}

	tasks := v1.Group("/tasks")
	{
		tasks.GET("", taskController.GetAllTasks)
		tasks.POST("", taskController.CreateTask)
		tasks.GET("/:id", taskController.GetTaskByID)
		tasks.PUT("/:id", taskController.UpdateTask)
		tasks.DELETE("/:id", taskController.DeleteTask)
	}

	punches := v1.Group("/punches")
	{
		punches.GET("", punchController.GetAllPunches)
		punches.POST("", punchController.OpenPunch)
		punches.POST("/backfill", punchController.BackfillPunch)
		punches.GET("/:id", punchController.GetPunchByID)
		punches.POST("/:id/close", punchController.ClosePunch)
	}
}
