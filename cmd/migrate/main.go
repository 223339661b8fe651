package main

import (
	"context"
	"flag"
	"os"

	"shoeshop/config"
	"shoeshop/internal/database"
	"shoeshop/internal/logger"
	"shoeshop/internal/migrate"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	recreate := flag.Bool("recreate", false, "удалить все таблицы и создать схему заново")
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("ENV") == "development"); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()
	opt := migrate.DefaultMigrateOptions()

	var err error
	if *recreate {
		err = migrate.RecreateSchema(ctx, db, log, opt)
	} else {
		err = migrate.MigrateShopDB(ctx, db, log, opt)
	}
	if err != nil {
		log.Fatal("Миграция не выполнена", zap.Error(err))
	}
	log.Info("Миграция завершена")
}
