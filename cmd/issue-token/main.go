package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/vigilo-exam/vigilo-backend/internal/config"
	"github.com/vigilo-exam/vigilo-backend/internal/database"
	"github.com/vigilo-exam/vigilo-backend/internal/logger"
	"github.com/vigilo-exam/vigilo-backend/internal/service"
	"golang.org/x/term"
)

// issue-token is a development stand-in for the external identity provider:
// it signs a participant JWT with the shared secret and registers it as the
// participant's active session.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Issue Participant Token ===")

	fmt.Print("Participant ID: ")
	participantID, _ := reader.ReadString('\n')
	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		fmt.Println("Error: participant id is required")
		return
	}

	fmt.Print("Display Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	// Let the operator type the signing secret instead of relying on env,
	// e.g. when pointing at a non-local deployment.
	if os.Getenv("JWT_SECRET") == "" {
		fmt.Print("JWT secret (hidden, empty keeps default): ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read secret")
		}
		if secret := strings.TrimSpace(string(raw)); secret != "" {
			cfg.JWTSecret = secret
		}
	}

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	authService := service.NewAuthService(cfg, rdb)

	token, err := authService.GenerateParticipantToken(ctx, participantID, name)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue token")
	}

	fmt.Println("\nToken:")
	fmt.Println(token)
}
