// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	productrepo "storefront/internal/product/repository"
	productservice "storefront/internal/product/service"
	"storefront/internal/security"
	userrepo "storefront/internal/user/repository"
	userservice "storefront/internal/user/service"
)

const (
	devUserEmail = "dev@example.com"
	devUserName  = "Dev User"
	devPassword  = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := userrepo.NewPostgresRepository(conn)
	userSvc := userservice.NewService(users, security.NewHasher(cfg.BcryptCost))

	existing, err := users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		log.Fatalf("check dev user: %v", err)
	}
	if existing != nil {
		log.Printf("dev user %s already exists, nothing to do", devUserEmail)
		return
	}

	u, err := userSvc.Create(ctx, devUserEmail, devUserName, devPassword)
	if err != nil {
		log.Fatalf("create dev user: %v", err)
	}
	log.Printf("created dev user %s (%s)", u.Email, u.ID)

	productSvc := productservice.NewService(productrepo.NewPostgresRepository(conn))
	p, err := productSvc.Create(ctx, u.ID, productservice.Input{
		Title:       "Canon EOS 1500D DSLR Camera with 18-55mm Lens",
		Description: "Designed for first-time DSLR owners who want impressive results straight out of the box, capture those magic moments no matter your level with the EOS 1500D.",
		Price:       879.99,
		Image:       "https://i.imgur.com/QlRphfQ.jpg",
	})
	if err != nil {
		log.Fatalf("create sample product: %v", err)
	}
	log.Printf("created sample product %s", p.ProductID)
}
