package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shoeshop/config"
	"shoeshop/internal/database"
	"shoeshop/internal/hashing"
	"shoeshop/internal/importer"
	"shoeshop/internal/logger"
	"shoeshop/internal/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Загружает стартовые данные из каталога с CSV-файлами.
// Все таблицы очищаются перед загрузкой.
func main() {
	flag.Parse()
	dir := flag.Arg(0)
	if dir == "" {
		fmt.Fprintln(os.Stderr, "usage: import <data-dir>")
		os.Exit(2)
	}

	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("ENV") == "development"); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	im := importer.New(db, repos, hashing.NewBcrypt(0), log)

	stats, err := im.Run(context.Background(), dir)
	if err != nil {
		log.Fatal("Импорт прерван", zap.Error(err))
	}

	for _, file := range []string{
		importer.FilePickupPoints, importer.FileClients,
		importer.FileItems, importer.FileOrders,
	} {
		st := stats[file]
		fmt.Printf("%s: imported %d, skipped %d\n", file, st.Imported, st.Skipped)
	}
}
