package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lingodrill/internal/config"
	"lingodrill/internal/security"
)

// tokengen mints custom sign-in tokens. Hand the printed token to a
// learner and they can sign in as the given identity until it expires.
func main() {
	uid := flag.String("uid", "", "Learner identity to embed in the token (required)")
	ttl := flag.Duration("ttl", 24*time.Hour, "How long the token stays valid")
	secret := flag.String("secret", "", "Signing secret (default: TOKEN_SECRET from the environment)")
	flag.Parse()

	if *uid == "" {
		fmt.Println("Error: -uid flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	signingSecret := *secret
	if signingSecret == "" {
		signingSecret = config.Load().TokenSecret
	}
	if signingSecret == "" {
		log.Fatal("No signing secret: pass -secret or set TOKEN_SECRET")
	}

	token, err := security.MintSignInToken(signingSecret, *uid, *ttl)
	if err != nil {
		log.Fatalf("Failed to mint token: %v", err)
	}

	fmt.Println(token)
}
