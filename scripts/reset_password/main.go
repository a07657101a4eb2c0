package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"aqso/process/dbenv"
	"aqso/store"
)

func main() {
	email := flag.String("email", "", "email of the user to reset")
	password := flag.String("password", "", "new plaintext password (min 6 chars)")
	flag.Parse()
	if *email == "" || *password == "" {
		log.Fatal("--email and --password are required")
	}

	db, err := dbenv.Open()
	if err != nil {
		log.Fatal(err)
	}
	err = store.SetPassword(db, *email, *password)
	if errors.Is(err, store.ErrNotFound) {
		log.Fatalf("user %s not found", *email)
	}
	if err != nil {
		log.Fatalf("reset failed: %v", err)
	}
	fmt.Printf("Password reset for user %s\n", *email)
}
