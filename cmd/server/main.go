package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/videolens/video-insight/internal/config"
	"github.com/videolens/video-insight/internal/database"
	"github.com/videolens/video-insight/internal/handler"
	"github.com/videolens/video-insight/internal/job"
	"github.com/videolens/video-insight/internal/middleware"
	"github.com/videolens/video-insight/internal/queue"
	"github.com/videolens/video-insight/internal/repository"
	"github.com/videolens/video-insight/internal/router"
	"github.com/videolens/video-insight/internal/scheduler"
	"github.com/videolens/video-insight/internal/sentiment"
	"github.com/videolens/video-insight/internal/service"
	"github.com/videolens/video-insight/internal/workflow"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	if err := database.Migrate("file://scripts/migrate/mysql",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache, the rate limiter and the job
	// ticket store. A nil client disables the middleware but tickets
	// are mandatory, so startup fails without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis: connection failed, job tickets need redis")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	profiles := repository.NewProfileRepo(db)
	videos := repository.NewVideoRepo(db)
	comments := repository.NewCommentRepo(db)
	history := repository.NewHistoryRepo(db)
	requests := repository.NewRequestRepo(db)

	flow := workflow.NewClient(cfg.WorkflowWebhookURL, 60*time.Second)
	tickets := job.NewStore(rdb, "job", 24*time.Hour)
	events := &service.ActivityPublisher{}

	analysisSvc := &service.AnalysisService{
		Profiles: profiles,
		Videos:   videos,
		Comments: comments,
		History:  history,
		Flow:     flow,
		Events:   events,
		Cost:     cfg.MetadataCost,
	}
	resultSvc := &service.ResultService{
		Videos:   videos,
		Comments: comments,
		Registry: sentiment.NewRegistry(),
	}
	sentimentSvc := &service.SentimentService{
		Profiles: profiles,
		Videos:   videos,
		Comments: comments,
		Flow:     flow,
		Tickets:  tickets,
		Events:   events,
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, profiles))
	router.RegisterAPI(e, router.API{
		Profile:   handler.NewProfileHandler(profiles),
		History:   handler.NewHistoryHandler(history),
		Analysis:  handler.NewAnalysisHandler(analysisSvc),
		Result:    handler.NewResultHandler(resultSvc),
		Sentiment: handler.NewSentimentHandler(sentimentSvc, tickets),
	}, cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterRelay(e, handler.NewRelayHandler(requests, flow, tickets, cfg.WorkflowCallbackURL))

	// Drain activity events in the background; the consumer reconnects
	// on broker failures and never takes the API down with it.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	sched := scheduler.New(tokens, requests, cfg.TokenPurgeCron, cfg.StaleSweepCron)
	sched.Start()
	defer sched.Stop()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
