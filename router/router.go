package router

import (
	"PdfVault/internal/handler"
	"PdfVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes. Role enforcement lives in the service
// layer's authorization gate, so authenticated routes are grouped only by
// resource.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.GET("/activate", handler.Activate)
		api.POST("/login", handler.Login)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		file := auth.Group("/file")
		{
			file.POST("/list", handler.ListFiles)
			file.GET("/:fileID", handler.GetFile)
			file.POST("/upload", handler.UploadFile)
			file.POST("/update", handler.UpdateFile)
			file.POST("/delete", handler.DeleteFile)
			file.GET("/download/:fileID", handler.DownloadFile)
		}

		tag := auth.Group("/tag")
		{
			tag.GET("/list", handler.ListTags)
			tag.GET("/usage", handler.ListTagUsage)
			tag.POST("/create", handler.CreateTag)
			tag.POST("/rename", handler.RenameTag)
			tag.POST("/delete", handler.DeleteTag)
		}

		user := auth.Group("/user")
		{
			user.GET("/me", handler.GetSelf)
			user.GET("/list", handler.ListUsers)
			user.POST("/create", handler.CreateUser)
			user.POST("/update", handler.UpdateUser)
			user.POST("/delete", handler.DeleteUser)
		}
	}
	return r
}
