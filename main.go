package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"checkin-server/config"
	"checkin-server/di"
	"checkin-server/loader"
	"checkin-server/store"
)

func main() {
	importPath := flag.String("import-sqlite", "",
		"import the CSV dataset into the given sqlite file and exit")
	flag.Parse()

	// .env is optional; env vars and defaults cover the rest.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	datasetPath := config.GetDatasetPath()

	if *importPath != "" {
		records, err := loader.ReadCheckinsFromCSV(datasetPath)
		if err != nil {
			log.Fatalf("Failed to read dataset: %v", err)
		}
		if err := loader.ImportCheckinsToSQLite(*importPath, records); err != nil {
			log.Fatalf("Failed to import dataset into sqlite: %v", err)
		}
		return
	}

	// The store must be fully built before the server accepts queries;
	// everything after this line only reads from it.
	records, err := loader.ReadCheckins(datasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	checkinStore := store.NewStore(records)

	container := di.NewContainer(checkinStore)

	container.IndexWarmupService.Start()
	container.CheckinHttpServer.Start()
}
