package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"wish-landing/handler"
	"wish-landing/internal/catalog"
	"wish-landing/internal/domain"
	"wish-landing/internal/integrations/paramstore"
	"wish-landing/internal/usecase"
	"wish-landing/internal/view"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	settingsParam := os.Getenv("SETTINGS_PARAM")
	cfg := usecase.Config{
		CookieName:   envString("WISH_COOKIE_NAME", usecase.DefaultCookieName),
		CookieTTL:    time.Duration(envInt("WISH_TTL_DAYS", 30)) * 24 * time.Hour,
		CookieSecure: envBool("COOKIE_SECURE", true),
		RefreshParam: envString("REFRESH_PARAM", usecase.DefaultRefreshParam),
		RefreshValue: envString("REFRESH_VALUE", usecase.DefaultRefreshValue),
	}

	// ---- Static data ----
	wishes, err := catalog.Default()
	if err != nil {
		slog.Error("failed to load wish catalog", "err", err)
		os.Exit(1)
	}
	if wishes.Len() == 0 {
		slog.Warn("wish catalog is empty; pages will render without a wish")
	}

	pages, err := view.New()
	if err != nil {
		slog.Error("failed to create view", "err", err)
		os.Exit(1)
	}

	// ---- Settings source ----
	var settings usecase.SettingsLoader = paramstore.Static{Site: domain.DefaultSiteSettings()}
	if settingsParam != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			slog.Error("failed to load AWS config", "err", err)
			os.Exit(1)
		}
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg), settingsParam)
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		settings = ssmClient
	}

	// ---- Handler ----
	landing, err := usecase.NewLandingService(settings, pages, wishes.Wishes(), cfg)
	if err != nil {
		slog.Error("failed to create landing service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(landing)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
