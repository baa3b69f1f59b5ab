package service

import (
	"course_gen_backend/internal/config"
	"course_gen_backend/internal/model"
	"course_gen_backend/internal/util"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	userRepo, _, _, _ := newRepos(db)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-auth-tests"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(userRepo, cfg)
}

func TestRegister_HashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	user := &model.User{Name: "Alice", Email: "alice@example.com", Password: "supersecret"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored model.User
	if err := db.Where("email = ?", "alice@example.com").First(&stored).Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.Password == "supersecret" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	if err := svc.Register(&model.User{Name: "A", Email: "dup@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	err := svc.Register(&model.User{Name: "B", Email: "dup@example.com", Password: "othersecret"})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestLogin_ReturnsParsableToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	if err := svc.Register(&model.User{Name: "A", Email: "login@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login("login@example.com", "supersecret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.Email != "login@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	if err := svc.Register(&model.User{Name: "A", Email: "wrong@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login("wrong@example.com", "badguess"); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuthService(db)

	if _, err := svc.Login("ghost@example.com", "whatever"); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
