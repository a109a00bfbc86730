package main

import (
	"flag"

	"oficina.app/configs"
	"oficina.app/configs/configsdatabase"
	"oficina.app/configs/configslog"
	"oficina.app/database"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "run schema migrations")
	seedFlag := flag.Bool("seed", false, "run seeders")
	flag.Parse()

	cfg := configs.LoadConfig()
	configsdatabase.InitDB(cfg)
	defer configsdatabase.CloseDB()

	database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag)
}
