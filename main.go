package main

import (
	"os"

	"venditto/config"
	"venditto/controllers"
	dbpkg "venditto/db"
	"venditto/router"
	"venditto/storage"
	"venditto/tools"
	"venditto/workers"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("falha ao carregar configuração")
	}

	database, err := dbpkg.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("falha ao conectar no banco")
	}
	defer database.Close()

	gateway := storage.New(database)

	pixup := tools.NewPixupClient(cfg.PixupClientID, cfg.PixupClientSecret, cfg.PixupAPIURL, cfg.HTTPTimeout)
	if cfg.PixupClientID == "" || cfg.PixupClientSecret == "" {
		log.Warn("PIXUP_CLIENT_ID/PIXUP_CLIENT_SECRET não configurados; cobranças vão falhar")
	}

	pixel := tools.NewPixelClient(cfg.PixelAPIVersion, cfg.HTTPTimeout)
	dispatcher := workers.StartPixelDispatcher(pixel, cfg.PixelQueueSize, cfg.HTTPTimeout)
	defer dispatcher.Close()

	engine := gin.New()
	router.Initialize(engine, controllers.Deps{
		Storage:  gateway,
		Provider: pixup,
		Pixel:    dispatcher,
		BaseURL:  cfg.BaseURL,
	})

	log.WithField("base_url", cfg.BaseURL).Infof("venditto escutando na porta %s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("servidor encerrou com erro")
	}
}
