package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	config "github.com/DRSN-tech/bikeshop-backend/internal/cfg"
	"github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/bikeshop-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/bikeshop-backend/internal/seed"
	"github.com/DRSN-tech/bikeshop-backend/pkg/logger"
	"github.com/DRSN-tech/bikeshop-backend/pkg/postgres"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const seedTimeout = 30 * time.Second

func main() {
	file := flag.String("file", "db/seed/catalog.yaml", "путь к файлу каталога")
	migrations := flag.String("migrations", postgres.DefaultMigrationsURL, "источник миграций")
	flag.Parse()

	log := logger.NewSlogLogger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to read .env: %v", err)
	}

	// Сиду нужна только база, остальная конфигурация не проверяется.
	var dbCfg config.PGDBCfg
	if err := env.Parse(&dbCfg); err != nil {
		log.Errorf(err, "failed to parse database config")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Errorf(err, "failed to open seed file")
		os.Exit(1)
	}
	catalog, err := seed.Load(f)
	f.Close()
	if err != nil {
		log.Errorf(err, "invalid seed file %s", *file)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, &dbCfg)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(log, *migrations); err != nil {
		log.Errorf(err, "failed to run migrations")
		os.Exit(1)
	}

	seeder := seed.NewSeeder(
		pgdb.NewTxManager(db.Pool),
		pgdb.NewSeedRepo(db.Pool),
		pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{}),
		pgdb.NewPartRepo(db.Pool, pgdbConv.PartConverterImpl{}),
		pgdb.NewVariantRepo(db.Pool, pgdbConv.VariantConverterImpl{}),
		pgdb.NewDependencyRepo(db.Pool, pgdbConv.DependencyConverterImpl{}),
		pgdb.NewCustomPriceRepo(db.Pool, pgdbConv.CustomPriceConverterImpl{}),
		log,
	)

	res, err := seeder.Run(ctx, catalog)
	if err != nil {
		log.Errorf(err, "failed to seed catalog")
		db.Close()
		os.Exit(1)
	}

	for key, id := range res.Products {
		log.Infof("product %s -> %s", key, id)
	}
}
