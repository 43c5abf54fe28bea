package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/satriadivo/goshop/config"
	"github.com/satriadivo/goshop/internal/domain/entity"
	"github.com/satriadivo/goshop/internal/infrastructure/mongodb"
	"github.com/satriadivo/goshop/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = db.Client().Disconnect(ctx) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	users := mongodb.NewUserRepository(db)
	products := mongodb.NewProductRepository(db)

	email := "demo@goshop.dev"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if _, err := users.GetByEmail(ctx, email); err != nil {
		u := &entity.User{
			Name:        "Demo User",
			Email:       email,
			Password:    hash,
			WalletMoney: cfg.DefaultWalletBalance,
			Address:     cfg.DefaultAddress,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, password)
	} else {
		fmt.Printf("user %s already exists, skipping\n", email)
	}

	catalog := []entity.Product{
		{Name: "Wireless Mouse", Cost: 25},
		{Name: "Mechanical Keyboard", Cost: 100},
		{Name: "USB-C Hub", Cost: 45},
		{Name: "Laptop Stand", Cost: 60},
		{Name: "Noise Cancelling Headphones", Cost: 200},
	}
	for i := range catalog {
		p := &catalog[i]
		if err := products.Create(ctx, p); err != nil {
			log.Fatalf("failed to seed product %q: %v", p.Name, err)
		}
		fmt.Printf("seeded product: id=%s name=%s cost=%.2f\n", p.ID, p.Name, p.Cost)
	}
}
