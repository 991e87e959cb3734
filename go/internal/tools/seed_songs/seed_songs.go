package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/airwavehq/airwave/go/internal/dbconfig"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Song mirrors the JSON snapshot structure
type Song struct {
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Description *string `json:"description"`
	FilePath    string  `json:"file_path"`
	CoverImage  *string `json:"cover_image"`
	Duration    *int    `json:"duration"`
	FileSize    int64   `json:"file_size"`
}

func main() {
	// 1) Load the JSON snapshot
	data, err := os.ReadFile("go/internal/assets/songs.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var songs []Song
	if err := json.Unmarshal(data, &songs); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert and count. file_path is unique per snapshot entry, so
	// re-running the seed skips songs that already landed.
	var (
		total    = len(songs)
		inserted int
		skipped  int
		errs     int
	)

	for _, s := range songs {
		var exists bool
		if err := pool.QueryRow(context.Background(),
			`SELECT EXISTS(SELECT 1 FROM songs WHERE file_path = $1)`, s.FilePath,
		).Scan(&exists); err != nil {
			fmt.Fprintf(os.Stderr, "error checking song %s: %v\n", s.Title, err)
			errs++
			continue
		}
		if exists {
			skipped++
			continue
		}

		if _, err := pool.Exec(context.Background(), `
            INSERT INTO songs (
              title, artist, description, file_path, cover_image, duration, file_size
            ) VALUES (
              $1,$2,$3,$4,$5,$6,$7
            )
        `,
			s.Title, s.Artist, s.Description, s.FilePath, s.CoverImage, s.Duration, s.FileSize,
		); err != nil {
			fmt.Fprintf(os.Stderr, "error inserting song %s: %v\n", s.Title, err)
			errs++
			continue
		}
		inserted++
	}

	// 4) Print summary
	fmt.Printf(
		"Songs seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}
