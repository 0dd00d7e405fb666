package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/cadastrolabs/cadastro-api/config"
	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
)

// Seeds a bootstrap admin account so the promote endpoint has a first caller.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@cadastrolabs.dev"
	password := "admin12345"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, cpf, rg, phone, address, number, complement,
			neighborhood, city, state, zip_code, gender, date_of_birth, terms_accepted, roles)
		VALUES ($1, $2, $3, $4, $5, '', '', '', '', '', '', 'SP', '01001000', 'other', '1990-01-01', TRUE, $6)
		ON CONFLICT (email) DO UPDATE SET roles = EXCLUDED.roles, updated_at = now()
		RETURNING id
	`, "Bootstrap Admin", email, hash, "52998224725", "SEED-ADMIN-RG",
		[]string{entity.RoleUser, entity.RoleAdmin}).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s password=%s\n", id, email, password)
}
