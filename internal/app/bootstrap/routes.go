// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountsfeature "github.com/skillforge/skillforge/internal/app/features/accounts"
	categoriesfeature "github.com/skillforge/skillforge/internal/app/features/categories"
	coursesfeature "github.com/skillforge/skillforge/internal/app/features/courses"
	enrollmentfeature "github.com/skillforge/skillforge/internal/app/features/enrollment"
	healthfeature "github.com/skillforge/skillforge/internal/app/features/health"
	profilefeature "github.com/skillforge/skillforge/internal/app/features/profile"
	progressfeature "github.com/skillforge/skillforge/internal/app/features/progress"
	resetpasswordfeature "github.com/skillforge/skillforge/internal/app/features/resetpassword"
	sectionsfeature "github.com/skillforge/skillforge/internal/app/features/sections"
	subsectionsfeature "github.com/skillforge/skillforge/internal/app/features/subsections"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/mailer"
	"github.com/skillforge/skillforge/internal/app/system/media"
	"github.com/skillforge/skillforge/internal/app/system/notify"
	"github.com/skillforge/skillforge/internal/app/system/payment"
)

// notifyPool is kept at package level so Shutdown can drain it.
var notifyPool *notify.Pool

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It builds the shared services (sessions, media
// store, payment client, mailer pool) and mounts one feature router per
// API area under /api/v1.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	mediaStore, err := media.New(context.Background(), media.Config{
		Endpoint:  appCfg.MediaEndpoint,
		AccessKey: appCfg.MediaAccessKey,
		SecretKey: appCfg.MediaSecretKey,
		Bucket:    appCfg.MediaBucket,
		UseSSL:    appCfg.MediaUseSSL,
		BaseURL:   appCfg.MediaBaseURL,
	})
	if err != nil {
		logger.Error("media store init failed", zap.Error(err))
		return nil, err
	}

	smtp := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort, appCfg.MailSMTPUser,
		appCfg.MailSMTPPass, appCfg.MailFrom, appCfg.MailFromName, logger)
	notifyPool = notify.NewPool(smtp, appCfg.NotifyWorkers, appCfg.NotifyQueueSize, logger)

	gateway := payment.NewClient(appCfg.PaymentKeyID, appCfg.PaymentSecret, appCfg.PaymentAPIURL)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api/v1", func(api chi.Router) {
		accountsHandler := accountsfeature.NewHandler(db, sessionMgr, logger)
		api.Mount("/auth", accountsfeature.Routes(accountsHandler))

		resetHandler := resetpasswordfeature.NewHandler(db, notifyPool, appCfg.BaseURL, logger)
		api.Mount("/auth/reset", resetpasswordfeature.Routes(resetHandler))

		categoriesHandler := categoriesfeature.NewHandler(db, logger)
		api.Mount("/categories", categoriesfeature.Routes(categoriesHandler, sessionMgr))

		coursesHandler := coursesfeature.NewHandler(db, mediaStore, appCfg.ThumbnailFolder, logger)
		api.Mount("/courses", coursesfeature.Routes(coursesHandler, sessionMgr))

		sectionsHandler := sectionsfeature.NewHandler(db, logger)
		api.Mount("/sections", sectionsfeature.Routes(sectionsHandler, sessionMgr))

		subSectionsHandler := subsectionsfeature.NewHandler(db, mediaStore, appCfg.VideoFolder, logger)
		api.Mount("/subsections", subsectionsfeature.Routes(subSectionsHandler, sessionMgr))

		enrollmentHandler := enrollmentfeature.NewHandler(db, gateway, notifyPool,
			appCfg.PaymentSecret, appCfg.Currency, logger)
		api.Mount("/enrollment", enrollmentfeature.Routes(enrollmentHandler, sessionMgr))

		progressHandler := progressfeature.NewHandler(db, logger)
		api.Mount("/progress", progressfeature.Routes(progressHandler, sessionMgr))

		profileHandler := profilefeature.NewHandler(db, mediaStore, appCfg.ImageFolder, sessionMgr, logger)
		api.Mount("/profile", profilefeature.Routes(profileHandler, sessionMgr))
	})

	return r, nil
}
