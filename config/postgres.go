package config

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ConnectPostgres opens the relational database from DATABASE_URL.
func ConnectPostgres() *sqlx.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("Please define the DATABASE_URL environment variable")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	db.SetMaxOpenConns(10)

	log.Println("Connected to Postgres!")
	return db
}
