package main

import (
	"context"
	"net/http"
	"time"

	"github.com/sicurlav/vdtcheck/internal/config"
	"github.com/sicurlav/vdtcheck/internal/handler"
	"github.com/sicurlav/vdtcheck/internal/logging"
	"github.com/sicurlav/vdtcheck/internal/repository"
	"github.com/sicurlav/vdtcheck/internal/router"
	"github.com/sicurlav/vdtcheck/internal/service"
	"github.com/sicurlav/vdtcheck/internal/store"
)

func main() {
	cfg := config.Load()
	log := logging.GetLogger()

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.FirestoreProject, cfg.CredentialsFile)
	if err != nil {
		log.WithError(err).Fatal("firestore connect failed")
	}
	defer st.Close()
	log.WithField("project", cfg.FirestoreProject).Info("connected to Firestore")

	// Repositories
	userRepo := repository.NewUserRepo(st)
	companyRepo := repository.NewCompanyRepo(st)
	siteRepo := repository.NewSiteRepo(st)
	responseRepo := repository.NewResponseRepo(st)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	scopeSvc := service.NewScopeService(companyRepo, siteRepo, responseRepo)
	submissionSvc := service.NewSubmissionService(responseRepo, siteRepo)
	analysisSvc := service.NewAnalysisService(scopeSvc, companyRepo, siteRepo)
	adminSvc := service.NewAdminService(companyRepo, siteRepo, userRepo)
	prefSvc := service.NewPreferenceService(userRepo, scopeSvc)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	questH := handler.NewQuestionnaireHandler()
	respH := handler.NewResponseHandler(submissionSvc, scopeSvc, userRepo)
	dashH := handler.NewDashboardHandler(analysisSvc, scopeSvc, userRepo)
	prefH := handler.NewPreferenceHandler(prefSvc, userRepo)
	analysisH := handler.NewAnalysisHandler(analysisSvc, userRepo)
	reportH := handler.NewReportHandler(analysisSvc, userRepo)
	adminH := handler.NewAdminHandler(adminSvc)

	r := router.New(cfg.JWTSecret, authH, questH, respH, dashH, prefH, analysisH, reportH, adminH)

	// Seed the bootstrap super admin in background so a slow Firestore
	// round-trip never delays startup.
	go func() {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := authSvc.SeedAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPass); err != nil {
			log.WithError(err).Warn("admin seed failed")
			return
		}
		log.WithField("email", cfg.AdminEmail).Info("admin user ready")
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("vdtcheck server starting")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
