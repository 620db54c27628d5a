package main

import (
	"flag"
	"fmt"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/jwt"
	"os"
)

func main() {
	var subject string
	flag.StringVar(&subject, "subject", "catalog-editor", "Token subject")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	token, err := jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).GenerateEditorToken(subject)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot issue token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
