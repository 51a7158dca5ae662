package main

import (
	"log"
	"net/http"

	"spendbook-server/src/api"
	"spendbook-server/src/auth"
	"spendbook-server/src/config"
	"spendbook-server/src/db"
	dbsql "spendbook-server/src/db/sql"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	dbsql.InitCache()
	store := dbsql.NewStore(pool)
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Router
	router := api.NewRouter(store, tokenManager, cfg.AllowedOrigins)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
