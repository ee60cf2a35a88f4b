package app

import (
	"context"
	"log"
	"net/http"

	"github.com/igor-kostenevich/woorkroom-BE/internal/config"
	httpx "github.com/igor-kostenevich/woorkroom-BE/internal/http"
	"github.com/igor-kostenevich/woorkroom-BE/internal/http/handlers"
	"github.com/igor-kostenevich/woorkroom-BE/internal/infrastructure/database"
)

func Run(cfg *config.Config) error {
	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := database.Ping(context.Background(), c.RedisClient); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc, cfg.CookieDomain, cfg.IsProd())
	r := httpx.BuildRouter(authH, c.TokenSvc, c.AuthSvc)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, sms driver=%s)", addr, cfg.Env, cfg.SMSDriver)
	return http.ListenAndServe(addr, r)
}
