// Developer tool: reset the schema and seed a small data set for local
// testing. The service itself applies migrations on startup; this exists
// for wiping a development database back to a known state.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"train-ticketing/internal/config"
	"train-ticketing/internal/database/migrations"
	"train-ticketing/internal/models"
)

func main() {
	seed := flag.Bool("seed", false, "insert sample data after migrating")
	down := flag.Bool("down", false, "roll back all migrations instead of applying them")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}
	cfg := config.Load()

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer sqldb.Close()
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("ping postgres: %v", err)
	}

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())

	if *down {
		if err := runner.MigrateDown(); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		log.Println("schema rolled back")
		return
	}

	if err := runner.MigrateUp(); err != nil {
		log.Fatalf("migrate up: %v", err)
	}
	log.Println("schema up to date")

	if *seed {
		if err := seedData(context.Background(), bunDB); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		log.Println("sample data seeded")
	}
}

func seedData(ctx context.Context, db *bun.DB) error {
	user := &models.User{
		ID:        "user-001",
		Email:     "rider@example.com",
		FullName:  "Sample Rider",
		CreatedAt: time.Now(),
	}
	if _, err := db.NewInsert().Model(user).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
		return err
	}

	stations := []models.Station{
		{Name: "Central", Latitude: 50.45, Longitude: 30.52},
		{Name: "Harbor", Latitude: 46.48, Longitude: 30.72},
	}
	if _, err := db.NewInsert().Model(&stations).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
		return err
	}

	trainType := &models.TrainType{Name: "Intercity"}
	if _, err := db.NewInsert().Model(trainType).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
		return err
	}

	train := &models.Train{
		Name:          "IC-101",
		CargoCount:    8,
		SeatsPerCargo: 56,
		TrainTypeID:   trainType.ID,
	}
	if _, err := db.NewInsert().Model(train).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
		return err
	}

	route := &models.Route{
		SourceID:      stations[0].ID,
		DestinationID: stations[1].ID,
		Distance:      475,
	}
	if _, err := db.NewInsert().Model(route).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
		return err
	}

	journey := &models.Journey{
		RouteID:       route.ID,
		TrainID:       train.ID,
		DepartureTime: time.Now().Add(48 * time.Hour).Truncate(time.Minute),
		ArrivalTime:   time.Now().Add(55 * time.Hour).Truncate(time.Minute),
	}
	_, err := db.NewInsert().Model(journey).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}
