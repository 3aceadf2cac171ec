package main

import (
	"errors"

	"github.com/stationery-next/internal/app"
	"github.com/stationery-next/internal/config"
	"github.com/stationery-next/internal/logger"
	"github.com/stationery-next/internal/models"
	"github.com/stationery-next/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	name      string
	category  string
	price     string
	stock     int
	threshold int
	visible   bool
}

// 演示目录：覆盖有货、低库存、缺货与隐藏四种状态
var demoProducts = []seedProduct{
	{name: "A5 Dotted Notebook", category: "Notebooks", price: "6.50", stock: 120, threshold: 15, visible: true},
	{name: "Spiral Sketchbook", category: "Notebooks", price: "9.90", stock: 8, threshold: 10, visible: true},
	{name: "Gel Pen Black 0.5mm", category: "Writing", price: "1.20", stock: 300, threshold: 50, visible: true},
	{name: "Fountain Pen Starter", category: "Writing", price: "24.00", stock: 0, threshold: 3, visible: true},
	{name: "HB Pencil (12 pack)", category: "Writing", price: "3.75", stock: 45, threshold: 10, visible: true},
	{name: "Desk Stapler", category: "Desk", price: "12.40", stock: 14, threshold: 5, visible: true},
	{name: "Sticky Notes 76x76", category: "Desk", price: "2.30", stock: 4, threshold: 20, visible: true},
	{name: "Archive Box", category: "Filing", price: "7.80", stock: 30, threshold: 5, visible: false},
}

type seedUser struct {
	username string
	password string
	role     string
}

var demoUsers = []seedUser{
	{username: "customer", password: "customer123", role: models.RoleCustomer},
	{username: "staff", password: "staff123", role: models.RoleStaff},
	{username: "auditor", password: "auditor123", role: "readonly_auditor"},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if err := app.PrepareDatabase(cfg); err != nil {
		stdLog.Fatalf("Failed to prepare database: %v", err)
	}
	if err := models.InitDefaultAdmin(cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		stdLog.Fatalf("Failed to init admin: %v", err)
	}

	createdUsers := 0
	for _, u := range demoUsers {
		created, err := seedUserIfMissing(models.DB, u)
		if err != nil {
			stdLog.Fatalf("Failed to seed user %s: %v", u.username, err)
		}
		if created {
			createdUsers++
		}
	}

	createdProducts := 0
	for _, p := range demoProducts {
		created, err := seedProductIfMissing(models.DB, p)
		if err != nil {
			stdLog.Fatalf("Failed to seed product %s: %v", p.name, err)
		}
		if created {
			createdProducts++
		}
	}

	logger.Infow("seed_done", "users_created", createdUsers, "products_created", createdProducts)
	stdLog.Printf("Seed finished: %d users, %d products created", createdUsers, createdProducts)
}

func seedUserIfMissing(db *gorm.DB, u seedUser) (bool, error) {
	var existing models.User
	err := db.Where("username = ?", u.username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hash, err := service.HashPassword(u.password)
	if err != nil {
		return false, err
	}
	return true, db.Create(&models.User{Username: u.username, PasswordHash: hash, Role: u.role}).Error
}

func seedProductIfMissing(db *gorm.DB, p seedProduct) (bool, error) {
	var count int64
	if err := db.Model(&models.Product{}).Where("LOWER(name) = LOWER(?)", p.name).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	product := models.Product{
		Name:              p.name,
		Category:          p.category,
		Price:             models.NewMoneyFromDecimal(decimal.RequireFromString(p.price)),
		Stock:             p.stock,
		LowStockThreshold: p.threshold,
		IsVisible:         p.visible,
	}
	return true, db.Create(&product).Error
}
