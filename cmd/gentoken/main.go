// cmd/gentoken/main.go — Genera un token de desarrollo firmado con el secreto
// compartido del proveedor de identidad.
// Uso: go run cmd/gentoken/main.go <uuid-del-operador>
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("uso: gentoken <uuid-del-operador>")
	}
	subject := os.Args[1]

	secret := os.Getenv("IDENTITY_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("sign error: %v", err)
	}
	fmt.Println(signed)
}
