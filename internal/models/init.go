package models

import (
	"strings"

	"github.com/stationery-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const fallbackAdminPassword = "admin123"

// InitDefaultAdmin 库中没有任何管理员时创建一个
func InitDefaultAdmin(username, password string) error {
	var admins int64
	if err := DB.Model(&User{}).Where("role = ?", RoleAdmin).Count(&admins).Error; err != nil || admins > 0 {
		return err
	}

	if username = strings.TrimSpace(username); username == "" {
		username = "admin"
	}
	usingFallback := password == ""
	if usingFallback {
		password = fallbackAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := DB.Create(&User{Username: username, PasswordHash: string(hash), Role: RoleAdmin}).Error; err != nil {
		return err
	}

	log := logger.SW("username", username)
	if usingFallback {
		log.Warnw("default_admin_created", "password", "fallback", "action", "change the password before going live")
		return nil
	}
	log.Infow("default_admin_created")
	return nil
}
