// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"loket-server/commons"
	"loket-server/handlers"
	"loket-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering routes")

	e.GET("/", handlers.HomeHandler)
	e.GET("/login", handlers.LoginPageHandler)
	e.POST("/login", handlers.LoginHandler)
	e.GET("/register", handlers.RegisterPageHandler)
	e.POST("/register", handlers.RegisterHandler)
	e.GET("/logout", handlers.LogoutHandler, middlewares.RequireSessionMiddleware)
	e.GET("/forgot-password", handlers.ForgotPasswordPageHandler)
	e.POST("/forgot-password", handlers.ForgotPasswordHandler)
	e.GET("/reset-password/:token", handlers.ResetPasswordPageHandler)
	e.POST("/reset-password/:token", handlers.ResetPasswordHandler)
	e.GET("/browse", handlers.BrowseHandler)
	e.GET("/report-missing", handlers.ReportMissingPageHandler, middlewares.RequireSessionMiddleware)
	e.POST("/report-missing", handlers.ReportMissingHandler, middlewares.RequireSessionMiddleware)
	e.POST("/report-sighting/:id", handlers.ReportSightingHandler, middlewares.RequireSessionMiddleware)
	e.GET("/profile", handlers.ProfileHandler, middlewares.RequireSessionMiddleware)
	e.GET("/case-details/:id", handlers.CaseDetailsHandler)
	e.GET("/static/uploads/:filename", handlers.ServeUploadHandler)
	e.Static("/static/images", "static/images")
	e.GET("/api/search", handlers.SearchAPIHandler)

	commons.Logger.Info("Routes registered successfully")
}
