package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avagyan/studgroups/internal/config"
	"github.com/avagyan/studgroups/internal/db"
	"github.com/avagyan/studgroups/internal/handler"
	"github.com/avagyan/studgroups/internal/handler/server"
	"github.com/avagyan/studgroups/internal/logger"
	"github.com/avagyan/studgroups/internal/notification"
	"github.com/avagyan/studgroups/internal/repository/postgres"
	"github.com/avagyan/studgroups/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	database := db.MustLoad(cfg)
	log.Info("successfully connected to database")
	defer database.Close()

	groupRepo := postgres.NewGroupRepository(database)
	membershipRepo := postgres.NewMembershipRepository(database)
	invitationRepo := postgres.NewInvitationRepository(database)
	joinRequestRepo := postgres.NewJoinRequestRepository(database)

	notifier := notification.NewLogNotifier(log)

	groupService := service.NewGroupService(database, groupRepo, membershipRepo)
	invitationService := service.NewInvitationService(database, groupRepo, membershipRepo, invitationRepo, notifier)
	joinRequestService := service.NewJoinRequestService(database, groupRepo, membershipRepo, joinRequestRepo, notifier)
	acceptanceService := service.NewAcceptanceService(database, groupRepo, membershipRepo, invitationRepo, joinRequestRepo, notifier)

	h := handler.NewHandler(groupService, invitationService, joinRequestService, acceptanceService)
	srv := server.NewServer(h, cfg.HTTP.Addr, log)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
}
