package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"aqso/models"
	"aqso/process/dbenv"
)

// Deletes refresh tokens that are revoked or expired.
func main() {
	email := flag.String("email", "", "Only clean tokens of this user (optional). If empty, cleans all users.")
	dry := flag.Bool("dry-run", true, "Preview actions without modifying the DB")
	yes := flag.Bool("yes", false, "Confirm destructive action when dry-run=false")
	flag.Parse()

	db, err := dbenv.Open()
	if err != nil {
		log.Fatal(err)
	}

	q := db.Model(&models.RefreshToken{}).Where("revoked = ? OR expires_at < ?", true, time.Now())
	scope := "all users"
	if *email != "" {
		var user models.User
		if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
			log.Fatalf("user lookup failed for %s: %v", *email, err)
		}
		q = q.Where("user_id = ?", user.ID)
		scope = fmt.Sprintf("user %s (id=%d)", user.Email, user.ID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		log.Fatalf("count failed: %v", err)
	}
	fmt.Printf("Planned actions for %s:\n", scope)
	fmt.Printf(" - DELETE %d revoked or expired refresh tokens\n", n)
	if *dry {
		fmt.Println("dry-run: no changes made. Use --dry-run=false --yes to execute.")
		return
	}
	if !*yes {
		fmt.Println("Destructive! Pass --yes to proceed.")
		return
	}
	res := q.Delete(&models.RefreshToken{})
	if res.Error != nil {
		log.Fatalf("delete failed: %v", res.Error)
	}
	fmt.Printf("cleanup done: %d tokens deleted\n", res.RowsAffected)
}
