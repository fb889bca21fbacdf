package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/campuskit/admin-backend/internal/config"
	"github.com/campuskit/admin-backend/internal/database"
	"github.com/campuskit/admin-backend/internal/logger"
	"github.com/campuskit/admin-backend/internal/model"
	"github.com/campuskit/admin-backend/internal/repository"
	"github.com/campuskit/admin-backend/internal/service"
	"golang.org/x/term"
)

// Seeds an account directly, bypassing the HTTP surface. Intended for
// bootstrapping the first administrator.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	accountRepo := repository.NewUserAccountRepository(pool)
	infoRepo := repository.NewUserInfoRepository(pool)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create User Account ===")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		name = username
	}

	fmt.Printf("Enter Permission codes, comma-separated (default %q = %s): ",
		model.PermissionAdmin.Code(), model.PermissionAdmin.Label())
	permissions, _ := reader.ReadString('\n')
	permissions = strings.TrimSpace(permissions)
	if permissions == "" {
		permissions = model.PermissionAdmin.Code()
	}

	// Same digest scheme the login path verifies against.
	digest := service.DigestPassword(cfg.PasswordSalt, password)

	account := &model.UserAccount{
		Username:       username,
		PasswordDigest: digest,
		Permissions:    permissions,
		State:          model.AccountStateActive,
	}
	if err := accountRepo.Create(ctx, account); err != nil {
		log.Fatal().Err(err).Msg("Failed to create account")
	}

	info := &model.UserInfo{AccountID: account.ID, Name: name}
	if err := infoRepo.Create(ctx, info); err != nil {
		log.Fatal().Err(err).Msg("Failed to create profile")
	}

	fmt.Printf("\nSuccess! Account '%s' created with ID: %d\n", account.Username, account.ID)
}
