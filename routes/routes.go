package routes

import (
	"rentvsbuy/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine, projection controllers.ProjectionControllerI) {
	r.GET("/", projection.ShowForm)
	r.POST("/compare", projection.Compare)
	r.POST("/compare/export", projection.ExportForm)

	v1 := r.Group("/api")

	{
		v1.GET("/keepServerRunning", controllers.HealthController.IsRunning)
		v1.POST("/projection", projection.Project)
		v1.POST("/projection/export", projection.Export)
	}
}
