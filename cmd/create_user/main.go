package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"aqso/models"
	"aqso/process/dbenv"
	"aqso/store"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <email> <password> [admin|pemilik]")
		os.Exit(2)
	}
	email, password := os.Args[1], os.Args[2]
	role := models.RolePemilik
	if len(os.Args) > 3 {
		role = os.Args[3]
	}

	db, err := dbenv.Open()
	if err != nil {
		log.Fatal(err)
	}
	if err := store.SeedRoles(db); err != nil {
		log.Fatalf("ensure roles: %v", err)
	}
	hashed, err := store.HashPassword(password)
	if err != nil {
		log.Fatal(err)
	}
	user, err := store.CreateUser(db, email, hashed, role, "")
	if errors.Is(err, store.ErrEmailTaken) {
		fmt.Printf("user %s already exists\n", email)
		return
	}
	if err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s role=%s id=%d\n", user.Email, role, user.ID)
}
