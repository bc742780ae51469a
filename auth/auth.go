package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"cineadmin/audit"
	"cineadmin/db"
	"cineadmin/globals"
	"cineadmin/middleware"
	"cineadmin/structs"
	"cineadmin/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

func issueToken(admin structs.Admin) (string, error) {
	claims := &middleware.Claims{
		UserID: admin.UserID,
		Email:  admin.Email,
		Name:   admin.Name,
		Role:   admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// Login checks the admin credentials and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var admin structs.Admin
	err := db.AdminsCollection.FindOne(r.Context(), bson.M{"email": creds.Email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(creds.Password)) != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := issueToken(admin)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	audit.Record(r.Context(), audit.Entry{
		Action:  audit.ActionLogin,
		Module:  "auth",
		ItemID:  admin.UserID,
		Details: "Admin login: " + admin.Email,
	})

	utils.SendJSONResponse(w, http.StatusOK, map[string]any{
		"token": token,
		"admin": admin,
	})
}

// RefreshToken reissues a token for an authenticated admin.
func RefreshToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var admin structs.Admin
	err := db.AdminsCollection.FindOne(r.Context(), bson.M{"userid": claims.UserID}).Decode(&admin)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "Unknown admin")
		return
	}

	token, err := issueToken(admin)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, map[string]string{"token": token})
}

// CreateAdmin lets a super_admin add another admin account.
func CreateAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if payload.Role != "admin" && payload.Role != "super_admin" {
		payload.Role = "admin"
	}

	count, err := db.AdminsCollection.CountDocuments(r.Context(), bson.M{"email": payload.Email})
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if count > 0 {
		utils.SendErrorResponse(w, http.StatusConflict, "Admin already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	admin := structs.Admin{
		UserID:       utils.GenerateID(14),
		Email:        payload.Email,
		Name:         payload.Name,
		Role:         payload.Role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := db.AdminsCollection.InsertOne(r.Context(), admin); err != nil {
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, admin)
}
