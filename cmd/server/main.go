package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"greenlands/config"
	"greenlands/database"
	"greenlands/router"

	"greenlands/pkg/apperr"
	"greenlands/pkg/token"
	"greenlands/pkg/validate"

	authCtrlImp "greenlands/pkg/auth/controllerImp"
	userRepoImp "greenlands/pkg/user/repositoryImp"

	landCtrlImp "greenlands/pkg/land/controllerImp"
	landRepoImp "greenlands/pkg/land/repositoryImp"

	farmerCtrlImp "greenlands/pkg/farmer/controllerImp"
	govCtrlImp "greenlands/pkg/government/controllerImp"

	analyticsCtrlImp "greenlands/pkg/analytics/controllerImp"
	analyticsSvcImp "greenlands/pkg/analytics/serviceImp"

	financeCtrlImp "greenlands/pkg/finance/controllerImp"
	financeRepoImp "greenlands/pkg/finance/repositoryImp"

	subsidyCtrlImp "greenlands/pkg/subsidy/controllerImp"
	subsidyRepoImp "greenlands/pkg/subsidy/repositoryImp"

	commCtrlImp "greenlands/pkg/communication/controllerImp"
	"greenlands/pkg/communication/hub"
	"greenlands/pkg/communication/mailer"
	commRepoImp "greenlands/pkg/communication/repositoryImp"

	healthCtrlImp "greenlands/pkg/health/controllerImp"
)

func main() {
	cfg := config.Load()
	apperr.Development = cfg.Env == "development"

	db := database.OpenSQLite(cfg.DBPath)
	if err := database.SeedSubsidies(db); err != nil {
		log.Fatalf("seed subsidies: %v", err)
	}
	if err := database.SeedAnnouncements(db); err != nil {
		log.Fatalf("seed announcements: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowCredentials: true,
	}))
	e.Use(echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Store: echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.RateMax) / cfg.RateWindow.Seconds()),
			Burst:     cfg.RateMax,
			ExpiresIn: cfg.RateWindow,
		}),
	}))

	tm := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	users := userRepoImp.New(db)
	lands := landRepoImp.New(db)
	txns := financeRepoImp.New(db)
	subsidies := subsidyRepoImp.New(db)
	comms := commRepoImp.New(db)

	wsHub := hub.New()
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	analytics := analyticsCtrlImp.New(analyticsSvcImp.New(db))

	router.New(e, tm, router.Controllers{
		Auth:          authCtrlImp.New(users, tm),
		Land:          landCtrlImp.New(lands),
		Farmer:        farmerCtrlImp.New(users, lands),
		Government:    govCtrlImp.New(users),
		Analytics:     analytics,
		Finance:       financeCtrlImp.New(txns),
		Subsidy:       subsidyCtrlImp.New(subsidies, cfg.SubsidyAllowedDomains),
		Communication: commCtrlImp.New(comms, users, wsHub, mail, cfg.AdminEmail),
		Health:        healthCtrlImp.NewHealthCtrl(db),
	})

	log.Printf("[srv] listening on :%s (%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
