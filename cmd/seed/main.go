package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"homeserve/internal/database"
	"homeserve/internal/domain"
	"homeserve/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "homeserve.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data in dependency order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	services := repository.NewServiceRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Name:         "Administrator",
		Email:        "admin@homeserve.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}
	log.Println("Admin created: admin@homeserve.local / admin123")

	customerEmails := []string{"asha@example.com", "ravi@example.com", "meera@example.com"}
	for i, email := range customerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		customer := &domain.User{
			Name:         fmt.Sprintf("Customer %d", i+1),
			Email:        email,
			PasswordHash: string(hash),
			Phone:        fmt.Sprintf("98765432%02d", i+10),
			Role:         domain.RoleCustomer,
			IsActive:     true,
			IsVerified:   true,
		}
		if err := users.Create(ctx, customer); err != nil {
			log.Fatal(err)
		}
	}

	providerEmails := []string{"suresh.pro@example.com", "lakshmi.pro@example.com", "vijay.pro@example.com"}
	for i, email := range providerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("provider123"), bcrypt.DefaultCost)
		provider := &domain.User{
			Name:         fmt.Sprintf("Provider %d", i+1),
			Email:        email,
			PasswordHash: string(hash),
			Phone:        fmt.Sprintf("98765433%02d", i+10),
			Role:         domain.RoleProvider,
			IsActive:     true,
			IsVerified:   true,
		}
		if err := users.Create(ctx, provider); err != nil {
			log.Fatal(err)
		}
	}

	// ================== CATALOG ==================
	log.Println("Creating categories and services...")

	type seedService struct {
		name     string
		desc     string
		price    float64
		discount float64
		duration int
		featured bool
		tags     []string
	}

	catalogSeed := []struct {
		name     string
		icon     string
		desc     string
		services []seedService
	}{
		{
			name: "Cleaning", icon: "broom", desc: "Home and office cleaning",
			services: []seedService{
				{name: "Deep Home Cleaning", desc: "Full house deep clean including kitchen and bathrooms", price: 2499, discount: 1999, duration: 240, featured: true, tags: []string{"cleaning", "deep-clean"}},
				{name: "Sofa Cleaning", desc: "Shampoo and vacuum treatment for sofas up to 5 seats", price: 899, duration: 60, tags: []string{"cleaning", "sofa"}},
			},
		},
		{
			name: "Plumbing", icon: "wrench", desc: "Repairs, fittings and leak fixes",
			services: []seedService{
				{name: "Tap & Mixer Repair", desc: "Fix leaking or jammed taps and mixers", price: 299, duration: 45, tags: []string{"plumbing"}},
				{name: "Bathroom Fitting Installation", desc: "Install showers, commodes and wash basins", price: 1499, discount: 1299, duration: 120, featured: true, tags: []string{"plumbing", "installation"}},
			},
		},
		{
			name: "Electrical", icon: "bolt", desc: "Wiring, switches and appliances",
			services: []seedService{
				{name: "Fan Installation", desc: "Ceiling or wall fan installation with testing", price: 399, duration: 45, tags: []string{"electrical"}},
				{name: "Full House Wiring Check", desc: "Safety inspection of the complete wiring", price: 999, duration: 90, tags: []string{"electrical", "inspection"}},
			},
		},
		{
			name: "Appliance Repair", icon: "tools", desc: "AC, fridge and washing machine services",
			services: []seedService{
				{name: "AC Service", desc: "Jet wash and gas pressure check for split and window ACs", price: 599, discount: 499, duration: 60, featured: true, tags: []string{"ac", "repair"}},
			},
		},
	}

	for order, c := range catalogSeed {
		cat := &domain.Category{
			Name:         c.name,
			Description:  c.desc,
			Icon:         c.icon,
			Slug:         domain.Slugify(c.name),
			IsActive:     true,
			DisplayOrder: order + 1,
		}
		if err := categories.Create(ctx, cat); err != nil {
			log.Fatal(err)
		}

		for _, sv := range c.services {
			svc := &domain.Service{
				Name:        sv.name,
				Description: sv.desc,
				CategoryID:  cat.ID,
				Price:       sv.price,
				Duration:    sv.duration,
				IsActive:    true,
				IsFeatured:  sv.featured,
				Tags:        sv.tags,
			}
			if sv.discount > 0 {
				d := sv.discount
				svc.DiscountPrice = &d
			}
			if err := services.Create(ctx, svc); err != nil {
				log.Fatal(err)
			}
		}
	}

	log.Println("Seed complete.")
}
