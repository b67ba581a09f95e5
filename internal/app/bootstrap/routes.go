// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminauthfeature "github.com/vitamove/vitamove-server/internal/app/features/adminauth"
	articlesfeature "github.com/vitamove/vitamove-server/internal/app/features/articles"
	blogsfeature "github.com/vitamove/vitamove-server/internal/app/features/blogs"
	categoriesfeature "github.com/vitamove/vitamove-server/internal/app/features/categories"
	consultationfeature "github.com/vitamove/vitamove-server/internal/app/features/consultation"
	coursesfeature "github.com/vitamove/vitamove-server/internal/app/features/courses"
	exercisesfeature "github.com/vitamove/vitamove-server/internal/app/features/exercises"
	healthfeature "github.com/vitamove/vitamove-server/internal/app/features/health"
	instructorsfeature "github.com/vitamove/vitamove-server/internal/app/features/instructors"
	legalfeature "github.com/vitamove/vitamove-server/internal/app/features/legal"
	purchasesfeature "github.com/vitamove/vitamove-server/internal/app/features/purchases"
	setsfeature "github.com/vitamove/vitamove-server/internal/app/features/sets"
	statisticsfeature "github.com/vitamove/vitamove-server/internal/app/features/statistics"
	testsfeature "github.com/vitamove/vitamove-server/internal/app/features/tests"
	uploadsfeature "github.com/vitamove/vitamove-server/internal/app/features/uploads"
	articlestore "github.com/vitamove/vitamove-server/internal/app/store/articles"
	blogstore "github.com/vitamove/vitamove-server/internal/app/store/blogs"
	categorystore "github.com/vitamove/vitamove-server/internal/app/store/categories"
	consultationstore "github.com/vitamove/vitamove-server/internal/app/store/consultations"
	coursestore "github.com/vitamove/vitamove-server/internal/app/store/courses"
	exercisestore "github.com/vitamove/vitamove-server/internal/app/store/exercises"
	instructorstore "github.com/vitamove/vitamove-server/internal/app/store/instructors"
	legalstore "github.com/vitamove/vitamove-server/internal/app/store/legal"
	"github.com/vitamove/vitamove-server/internal/app/store/logincodes"
	metricsstore "github.com/vitamove/vitamove-server/internal/app/store/metrics"
	purchasestore "github.com/vitamove/vitamove-server/internal/app/store/purchases"
	setstore "github.com/vitamove/vitamove-server/internal/app/store/sets"
	teststore "github.com/vitamove/vitamove-server/internal/app/store/tests"
	"github.com/vitamove/vitamove-server/internal/app/system/auth"
	"github.com/vitamove/vitamove-server/internal/app/system/mailer"
	"github.com/vitamove/vitamove-server/internal/app/system/media"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. VitaMove mounts the health check at the
// root, the JSON API under /api, and serves uploaded media files directly.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.VitaMoveMongoDatabase

	// Session manager for the admin cookie. Secure cookies in production.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Outgoing mail: real SMTP when a host is configured, otherwise log-only.
	var mail mailer.Sender
	if appCfg.MailSMTPHost != "" {
		mail = mailer.NewSMTP(appCfg.MailSMTPHost, appCfg.MailSMTPPort, appCfg.MailSMTPUser, appCfg.MailSMTPPass, appCfg.MailFrom, appCfg.MailFromName)
	} else {
		mail = mailer.NewConsole(logger)
	}

	mediaStore, err := media.NewLocal(appCfg.MediaPath, appCfg.MediaURLPrefix)
	if err != nil {
		logger.Error("media storage init failed", zap.Error(err))
		return nil, err
	}

	// Stores.
	categories := categorystore.New(db)
	sets := setstore.New(db)
	exercises := exercisestore.New(db)
	articles := articlestore.New(db)
	blogs := blogstore.New(db)
	courses := coursestore.New(db)
	instructors := instructorstore.New(db)
	consultations := consultationstore.New(db)
	legalDocs := legalstore.New(db)
	tests := teststore.New(db)
	purchases := purchasestore.New(db)
	metrics := metricsstore.New(db)
	codes := logincodes.New(db, appCfg.LoginCodeExpiry)

	// The first configured admin address receives consultation notices.
	noticeAddr := ""
	if len(appCfg.AdminEmails) > 0 {
		noticeAddr = appCfg.AdminEmails[0]
	}

	r := chi.NewRouter()

	// Loads the admin session into context on every request so handlers can
	// widen their responses via auth.CurrentAdmin(r).
	r.Use(sessionMgr.LoadSession)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.VitaMoveMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded media with pre-compressed file support (gzip/brotli)
	r.Handle(appCfg.MediaURLPrefix+"/*", fileserver.Handler(appCfg.MediaURLPrefix, appCfg.MediaPath))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/categories", categoriesfeature.Routes(
			categoriesfeature.NewHandler(categories, sets, exercises, logger)))
		api.Mount("/sets", setsfeature.Routes(
			setsfeature.NewHandler(sets, exercises, purchases, logger)))
		api.Mount("/exercises", exercisesfeature.Routes(
			exercisesfeature.NewHandler(exercises, logger)))
		api.Mount("/articles", articlesfeature.Routes(
			articlesfeature.NewHandler(articles, logger)))
		api.Mount("/blogs", blogsfeature.Routes(
			blogsfeature.NewHandler(blogs, articles, logger)))
		api.Mount("/courses", coursesfeature.Routes(
			coursesfeature.NewHandler(courses, sets, logger)))
		api.Mount("/instructors", instructorsfeature.Routes(
			instructorsfeature.NewHandler(instructors, courses, logger)))
		api.Mount("/consultation", consultationfeature.Routes(
			consultationfeature.NewHandler(consultations, mail, noticeAddr, appCfg.SiteName, logger)))
		api.Mount("/legal", legalfeature.Routes(
			legalfeature.NewHandler(legalDocs, logger)))
		api.Mount("/tests", testsfeature.Routes(
			testsfeature.NewHandler(tests, logger)))
		api.Mount("/purchases", purchasesfeature.Routes(
			purchasesfeature.NewHandler(purchases, logger)))
		api.Mount("/statistics", statisticsfeature.Routes(
			statisticsfeature.NewHandler(metrics, logger)))
		api.Mount("/uploads", uploadsfeature.Routes(
			uploadsfeature.NewHandler(mediaStore, logger)))
		api.Mount("/admin", adminauthfeature.Routes(
			adminauthfeature.NewHandler(codes, sessionMgr, mail, appCfg.AdminEmails, appCfg.SiteName, logger)))
	})

	return r, nil
}
