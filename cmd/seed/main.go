package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"cms/internal/config"
	"cms/internal/db"
	"cms/internal/model"
	"cms/internal/repository"
)

// Seeds the fixed role set and, when ADMIN_PASSWORD is set, a bootstrap
// super-admin account.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Role{}, &model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	if err := roleRepo.SeedDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}
	log.Printf("Roles seeded: %s, %s", model.RoleSuperAdmin, model.RoleAuthor)

	if cfg.AdminPass == "" {
		log.Println("ADMIN_PASSWORD not set, skipping super-admin account")
		return
	}

	exists, err := userRepo.ExistsByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		log.Fatalf("Failed to check admin account: %v", err)
	}
	if exists {
		log.Printf("Super-admin %s already present, nothing to do", cfg.AdminEmail)
		return
	}

	role, err := roleRepo.FindByName(ctx, model.RoleSuperAdmin)
	if err != nil {
		log.Fatalf("Failed to resolve super-admin role: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.User{
		RoleID:       role.ID,
		Email:        cfg.AdminEmail,
		FullName:     "Administrator",
		PasswordHash: string(hashed),
		IsSuperuser:  true,
		IsStaff:      true,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create super-admin: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Super-admin account: %s", cfg.AdminEmail)
}
