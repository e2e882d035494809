// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"loket-server/commons"
	"loket-server/db"
	"loket-server/handlers"
	"loket-server/middlewares"
	"loket-server/routes"
	"loket-server/web"
	"os"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	commons.LoadEnvFile()
	commons.InitLogger()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(commons.GetEnv("MAX_UPLOAD_SIZE", "16M")))
	e.Use(middlewares.LoadUserMiddleware)

	renderer, err := web.NewRenderer(commons.GetEnv("TEMPLATES_DIR", "templates"))
	if err != nil {
		e.Logger.Fatal("Failed to load templates: ", err)
	}
	e.Renderer = renderer

	if err := os.MkdirAll(handlers.UploadDir(), 0o755); err != nil {
		e.Logger.Fatal("Failed to create upload directory: ", err)
	}

	db.InitDB()
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}
	if slices.Contains(os.Args[1:], "--seed-db") {
		commons.Logger.Debug("--seed-db flag detected, seeding database")
		if err := db.SeedDB(); err != nil {
			e.Logger.Fatal("Failed to seed database: ", err)
		}
	}

	routes.RegisterRoutes(e)

	port := commons.GetEnv("PORT")
	if port == "" {
		port = ":8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}
