package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
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

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{"requests", "assets", "asset_categories", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedUsers := []struct {
			FirstName string
			LastName  string
			Email     string
			Role      string
		}{
			{"Sari", "Widodo", "sari.widodo@mail.com", "superadmin"},
			{"Budi", "Santoso", "budi.santoso@mail.com", "admin"},
			{"Rina", "Lestari", "rina.lestari@mail.com", "user"},
		}

		for _, u := range seedUsers {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (first_name, last_name, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, now(), now())",
				u.FirstName, u.LastName, u.Email, string(hash), u.Role).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded %s user: %s\n", u.Role, u.Email)
		}

		categories := []struct {
			Name string
			Desc string
		}{
			{"laptop", "laptops and portable workstations"},
			{"monitor", "displays and monitors"},
			{"furniture", "desks, chairs and office furniture"},
			{"vehicle", "company vehicles"},
			{"other", "miscellaneous equipment"},
		}

		for _, c := range categories {
			var exists int
			row := db.Raw("SELECT 1 FROM asset_categories WHERE name = ?", c.Name).Row()
			if err := row.Scan(&exists); err != nil {

				if err := db.Exec("INSERT INTO asset_categories (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", c.Name, c.Desc).Error; err != nil {
					log.Fatalf("failed to insert asset category %s: %v", c.Name, err)
				}
				fmt.Printf("Seeded asset category: %s\n", c.Name)
			}
		}

		fmt.Println("Asset categories seeded successfully")
	},
}
