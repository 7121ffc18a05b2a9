package webserver

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/verity-app/verity-backend/src/api/types"
)

// UserStore is the persistence surface the auth handlers need.
type UserStore interface {
	Create(user *types.User) error
	FindByEmail(email string) (*types.User, error)
	FindByID(id uint64) (*types.User, error)
}

type Auth struct {
	users     UserStore
	tokens    TokenRevoker
	jwtSecret []byte
}

func NewAuth(users UserStore, tokens TokenRevoker, secret []byte) Auth {
	return Auth{users: users, tokens: tokens, jwtSecret: secret}
}

func (a Auth) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "database error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "email already registered"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to hash password"})
		return
	}

	user := types.User{Email: req.Email, HashedPassword: string(hashed), Name: req.Name}
	if err := a.users.Create(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "database error"})
		return
	}

	log.Printf("Registered user %d (%s)", user.ID, user.Email)
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"name":       user.Name,
		"created_at": user.CreatedAt.Format(time.RFC3339),
	})
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "database error"})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid email or password"})
		return
	}

	token, err := issueJWT(user.ID, a.jwtSecret)
	if err != nil {
		log.Printf("Failed to issue JWT for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// Logout revokes the presented token for the remainder of its lifetime.
func (a Auth) Logout(c *gin.Context) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "missing bearer token"})
		return
	}

	tok, err := jwt.Parse(h[7:], func(t *jwt.Token) (interface{}, error) { return a.jwtSecret, nil })
	if err != nil || !tok.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid token"})
		return
	}

	claims, _ := tok.Claims.(jwt.MapClaims)
	jti, _ := claims["jti"].(string)
	if jti == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "token has no id"})
		return
	}

	ttl := tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}

	if err := a.tokens.Revoke(c, jti, ttl); err != nil {
		log.Printf("Failed to revoke token %s: %v", jti, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to revoke token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
