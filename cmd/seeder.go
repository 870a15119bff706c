package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"whatsapp_notifications", "vehicle_permits", "user_permissions", "permissions", "users", "employees"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		hrEmail := "hr@mail.com"
		hrName := "HR Reviewer"
		var exists int
		row := db.Raw("SELECT 1 FROM users WHERE email = ?", hrEmail).Row()
		hrExists := false
		if err := row.Scan(&exists); err == nil {
			fmt.Println("hr user already exists; will ensure permissions")
			hrExists = true
		}

		if !hrExists {
			if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", hrEmail, hrName, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert hr user: %v", err)
			}
			fmt.Println("Seeded hr user:", hrEmail)
		}

		adminEmail := "admin@mail.com"
		adminName := "System Admin"
		row = db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row()
		adminExists := false
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists; will ensure permissions")
			adminExists = true
		}

		if !adminExists {
			if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", adminEmail, adminName, string(hash)).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded admin user:", adminEmail)
		}

		permissions := []struct {
			Name string
			Desc string
		}{
			{"admin", "full administrator"},
			{"decide_permits", "Can approve or reject vehicle permits"},
			{"view_permits", "Can view vehicle permits"},
			{"export_permits", "Can export vehicle permits to CSV"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
			}
		}

		var adminUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", adminEmail).Row().Scan(&adminUserID); err != nil {
			log.Fatalf("failed to lookup admin user id: %v", err)
		}

		for _, p := range permissions {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row().Scan(&pid); err != nil {
				log.Fatalf("permission not found after insert %s: %v", p.Name, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", adminUserID, pid).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, granted_by, created_at) VALUES (?, ?, NULL, now())", adminUserID, pid).Error; err != nil {
				log.Fatalf("failed to grant permission %s to admin user: %v", p.Name, err)
			}
		}

		fmt.Println("Granted all permissions to admin user:", adminEmail)

		var hrUserID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", hrEmail).Row().Scan(&hrUserID); err != nil {
			log.Fatalf("failed to lookup hr user id: %v", err)
		}

		hrUserPermissions := []string{"decide_permits", "view_permits", "export_permits"}
		for _, permName := range hrUserPermissions {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
				log.Fatalf("permission not found %s: %v", permName, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", hrUserID, pid).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, granted_by, created_at) VALUES (?, ?, NULL, now())", hrUserID, pid).Error; err != nil {
				log.Fatalf("failed to grant permission %s to hr user: %v", permName, err)
			}
		}

		fmt.Println("Granted permit review permissions to hr user:", hrEmail)

		employees := []struct {
			EmployeeID string
			Name       string
			Department string
			Grade      string
			Email      string
			Phone      string
		}{
			{"EMP001", "Budi Santoso", "Engineering", "Senior", "budi@mail.com", "+628111111111"},
			{"EMP002", "Siti Rahma", "Finance", "Staff", "siti@mail.com", "+628222222222"},
			{"EMP003", "Andi Wijaya", "Operations", "Manager", "andi@mail.com", "+628333333333"},
			{"EMP004", "Dewi Lestari", "Marketing", "Staff", "dewi@mail.com", ""},
		}

		for _, e := range employees {
			var exists int
			row := db.Raw("SELECT 1 FROM employees WHERE employee_id = ?", e.EmployeeID).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			var phone interface{}
			if e.Phone != "" {
				phone = e.Phone
			}

			if err := db.Exec("INSERT INTO employees (employee_id, name, department, grade, email, phone, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
				e.EmployeeID, e.Name, e.Department, e.Grade, e.Email, phone).Error; err != nil {
				log.Fatalf("failed to insert employee %s: %v", e.EmployeeID, err)
			}
			fmt.Printf("Seeded employee: %s (%s)\n", e.Name, e.EmployeeID)
		}

		fmt.Println("Employees seeded successfully")
	},
}
