package globals

import "os"

type ContextKey string

const UserIDKey ContextKey = "userId"
const ClaimsKey ContextKey = "claims"

var JwtSecret = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret_do_not_use_in_prod"
	}
	return secret
}
