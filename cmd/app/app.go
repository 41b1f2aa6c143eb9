package main

import (
	"os"

	"github.com/DRSN-tech/bikeshop-backend/internal/app"
	config "github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
)

//	@title			Bikeshop API
//	@version		1.0
//	@description	Каталог велосипедов, расчёт цены конфигурации и корзины.
//	@BasePath		/api/v1
func main() {
	bootLog := logger.NewSlogLogger()

	cfg, err := config.Load(bootLog)
	if err != nil {
		bootLog.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	log := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
