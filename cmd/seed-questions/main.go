package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vigilo-exam/vigilo-backend/internal/config"
	"github.com/vigilo-exam/vigilo-backend/internal/database"
	"github.com/vigilo-exam/vigilo-backend/internal/logger"
	"github.com/vigilo-exam/vigilo-backend/internal/model"
	"github.com/vigilo-exam/vigilo-backend/internal/repository"
)

// seedQuestion is the JSON shape of one catalog entry in the seed file.
type seedQuestion struct {
	ID            string   `json:"id"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Category      string   `json:"category"`
}

func main() {
	var seedFile string
	flag.StringVar(&seedFile, "file", "seed/questions.json", "Path to the question catalog JSON")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", seedFile).Msg("Failed to read seed file")
	}

	var seeds []seedQuestion
	if err := json.Unmarshal(raw, &seeds); err != nil {
		log.Fatal().Err(err).Msg("Invalid seed JSON")
	}
	if len(seeds) == 0 {
		log.Fatal().Msg("Seed file contains no questions")
	}

	questions := make([]model.Question, len(seeds))
	for i, s := range seeds {
		if s.ID == "" || s.Prompt == "" || len(s.Options) < 2 {
			log.Fatal().Int("index", i).Msg("Question needs an id, a prompt, and at least two options")
		}
		if s.CorrectOption < 0 || s.CorrectOption >= len(s.Options) {
			log.Fatal().Str("id", s.ID).Msg("correct_option out of range")
		}
		questions[i] = model.Question{
			ID:            s.ID,
			Prompt:        s.Prompt,
			Options:       s.Options,
			CorrectOption: s.CorrectOption,
			Category:      s.Category,
			Position:      i,
		}
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	if err := questionRepo.ReplaceAll(ctx, questions); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed questions")
	}

	fmt.Printf("Seeded %d questions from %s\n", len(questions), seedFile)
}
