package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/JMF-Alex/ElImpostor-Frontend/internal/cli"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/config"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/game"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/httpapi"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/logger"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/room"
	"github.com/JMF-Alex/ElImpostor-Frontend/internal/session"
	"go.uber.org/zap"
)

func main() {
	_ = config.LoadDotEnv(".env")
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	sess := session.New(log, cfg.OutboundQueueSize, time.Duration(cfg.SendTimeoutSeconds)*time.Second)

	dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.DialTimeoutSeconds)*time.Second)
	err := sess.Connect(dialCtx, cfg.ServerURL)
	cancel()
	if err != nil {
		log.Fatal("connect failed", zap.String("url", cfg.ServerURL), zap.Error(err))
	}

	store := room.NewStore()
	votes := game.NewVoteController(sess)
	dispatcher := room.NewDispatcher(
		sess, store, votes,
		sess.SelfID(),
		time.Duration(cfg.TieBannerSeconds)*time.Second,
		log,
	)

	if cfg.StatusAddr != "" {
		go func() {
			log.Info("status endpoint listening", zap.String("addr", cfg.StatusAddr))
			if err := http.ListenAndServe(cfg.StatusAddr, httpapi.SetupRoutes(dispatcher, votes)); err != nil {
				log.Warn("status endpoint stopped", zap.Error(err))
			}
		}()
	}

	app := cli.New(dispatcher, votes, os.Stdin, os.Stdout)
	if err := app.Run(); err != nil {
		log.Warn("input closed", zap.Error(err))
	}

	dispatcher.Detach()
	sess.Close()
}
