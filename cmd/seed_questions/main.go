package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"orgpulse/internal/config"
	"orgpulse/internal/database"
	"orgpulse/internal/logger"
	"orgpulse/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/excellence_questions.json"

// seedQuestion mirrors one entry of the seed file. Question text is the
// natural key: re-running the seeder never duplicates a question.
type seedQuestion struct {
	Category     string `json:"category"`
	Text         string `json:"text"`
	DisplayOrder int    `json:"display_order"`
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting question catalog seeding...")
	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var questions []seedQuestion
	if err := json.Unmarshal(byteValue, &questions); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Loaded seed data", zap.Int("questions", len(questions)))

	if err := seedCatalog(ctx, db, log, questions); err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Question catalog seeding completed.")
}

func seedCatalog(ctx context.Context, db *sqlx.DB, log *zap.Logger, questions []seedQuestion) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		} else {
			err = tx.Commit()
		}
	}()

	const mergeQuery = `
		MERGE INTO questions q
		USING (SELECT :1 AS QUESTION_TEXT FROM dual) src
		ON (q.QUESTION_TEXT = src.QUESTION_TEXT)
		WHEN MATCHED THEN UPDATE SET
			q.CATEGORY = :2,
			q.DISPLAY_ORDER = :3,
			q.UPDATED_AT = :4
		WHEN NOT MATCHED THEN INSERT
			(ID, CATEGORY, QUESTION_TEXT, DISPLAY_ORDER, CREATED_AT, UPDATED_AT)
		VALUES (:5, :6, :7, :8, :9, :10)`

	now := time.Now()
	for _, q := range questions {
		if q.Text == "" {
			return fmt.Errorf("seed entry with empty question text (category %s)", q.Category)
		}
		id := util.NewULID()
		if _, err = tx.ExecContext(ctx, mergeQuery,
			q.Text, q.Category, q.DisplayOrder, now,
			id, q.Category, q.Text, q.DisplayOrder, now, now,
		); err != nil {
			return fmt.Errorf("failed to upsert question %q: %w", firstN(q.Text, 40), err)
		}
	}
	log.Info("Upserted questions", zap.Int("count", len(questions)))
	return nil
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
