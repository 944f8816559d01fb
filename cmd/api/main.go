package main

import (
	"context"
	"net/http"
	"time"

	"getgsa/internal/ai"
	"getgsa/internal/api"
	"getgsa/internal/config"
	"getgsa/internal/pipeline"
	"getgsa/internal/providers"
	"getgsa/internal/rules"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	embedder, err := providers.FromList(cfg.EmbedProviders, cfg.EmbedDim)
	if err != nil {
		log.Fatalw("build embedding provider", "err", err)
	}
	pack, err := rules.LoadPack(cfg.RulePackPath)
	if err != nil {
		log.Fatalw("load rule pack", "err", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	corpus, err := rules.NewCorpus(ctx, pack, embedder, cfg.EmbedDim)
	cancel()
	if err != nil {
		log.Fatalw("build rule corpus", "err", err)
	}
	retriever := rules.NewRetriever(corpus, embedder, cfg.EmbedDim)

	svc, err := ai.New(cfg)
	if err != nil {
		log.Fatalw("build ai service", "err", err)
	}

	pipe := pipeline.New(cfg, log, svc, corpus, retriever)
	srv := api.NewServer(cfg, log, pipe)

	log.Infow("getgsa api listening",
		"addr", cfg.APIAddr,
		"embed_providers", cfg.EmbedProviders,
		"ai_provider", cfg.AIProvider,
		"corpus_size", corpus.Size())
	if err := http.ListenAndServe(cfg.APIAddr, srv.Routes()); err != nil {
		log.Fatal(err)
	}
}
