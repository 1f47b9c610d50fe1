// Command hashgen prints a bcrypt hash and the SQL needed to seed an admin account.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ecometrics/internal/models"
	"github.com/ecometrics/internal/services"
)

func main() {
	username := flag.String("username", "@admin", "admin username, must start with @")
	password := flag.String("password", "", "password to hash")
	flag.Parse()

	if err := services.ValidateRegistration(*username, *password, *password); err != nil {
		fmt.Fprintf(os.Stderr, "invalid credentials: %v\n", err)
		os.Exit(1)
	}

	hashed, err := services.HashPassword(*password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Username: %s\n", *username)
	fmt.Printf("Hashed Password: %s\n", hashed)
	fmt.Println()
	fmt.Printf("INSERT INTO users (username, password_hash, role, created_at, updated_at)\n")
	fmt.Printf("VALUES ('%s', '%s', '%s', strftime('%%Y-%%m-%%d %%H:%%M:%%S', 'now'), strftime('%%Y-%%m-%%d %%H:%%M:%%S', 'now'));\n",
		strings.ReplaceAll(*username, "'", "''"), hashed, models.RoleAdmin)
}
