package db

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

// DemoTable is the view SeedDemo creates for browsing.
const DemoTable = "visit_log"

const demoSchema = `
CREATE TABLE IF NOT EXISTS restaurants (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    address      TEXT,
    city         TEXT,
    neighborhood TEXT,
    cuisine      TEXT,
    price_range  TEXT CHECK(price_range IN ('$','$$','$$$','$$$$') OR price_range IS NULL),
    created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS visits (
    id            INTEGER PRIMARY KEY,
    restaurant_id INTEGER NOT NULL REFERENCES restaurants(id),
    visited_on    TEXT,
    rating        REAL CHECK(rating BETWEEN 1 AND 10 OR rating IS NULL),
    notes         TEXT,
    would_return  INTEGER CHECK(would_return IN (0,1) OR would_return IS NULL),
    created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_visits_restaurant_id ON visits(restaurant_id);
CREATE INDEX IF NOT EXISTS idx_visits_visited_on ON visits(visited_on DESC);

CREATE VIEW IF NOT EXISTS visit_log AS
SELECT
    v.id,
    v.visited_on,
    r.name,
    r.city,
    r.cuisine,
    r.price_range AS price,
    v.rating,
    v.would_return,
    v.notes
FROM visits v
JOIN restaurants r ON v.restaurant_id = r.id;
`

var (
	demoNames    = []string{"Noodle Bar", "Casa Verde", "The Copper Pot", "Sakura", "Luigi's", "Blue Door", "Taqueria Sol", "Le Petit Zinc", "Spice Route", "Harbor Fish", "Smoke & Oak", "Green Table"}
	demoCities   = []string{"Portland", "Seattle", "Oakland", "Austin", "Chicago", "Brooklyn"}
	demoCuisines = []string{"ramen", "mexican", "american", "japanese", "italian", "diner", "mexican", "french", "indian", "seafood", "bbq", "vegetarian"}
	demoPrices   = []string{"$", "$$", "$$$", "$$$$"}
	demoNotes    = []string{"", "great service", "too loud on a Friday night", "get the special", "long wait but worth it", "patio seating", "would bring visitors here", "cash only"}
)

// SeedDemo creates the demo restaurant log and fills it with visits unless
// it already holds data.
func SeedDemo(db *sql.DB, visits int) error {
	if _, err := db.Exec(demoSchema); err != nil {
		return fmt.Errorf("failed to initialize demo schema: %w", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM restaurants").Scan(&count); err != nil {
		return fmt.Errorf("failed to count restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	rng := rand.New(rand.NewSource(7))
	for i, name := range demoNames {
		_, err := tx.Exec(
			`INSERT INTO restaurants (id, name, city, cuisine, price_range) VALUES (?, ?, ?, ?, ?)`,
			i+1, name, demoCities[i%len(demoCities)], demoCuisines[i], demoPrices[rng.Intn(len(demoPrices))],
		)
		if err != nil {
			return fmt.Errorf("failed to insert demo restaurant: %w", err)
		}
	}

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < visits; i++ {
		var rating, wouldReturn, notes any
		if rng.Intn(8) != 0 {
			rating = float64(2+rng.Intn(17)) / 2
		}
		if rng.Intn(5) != 0 {
			wouldReturn = rng.Intn(2)
		}
		if n := demoNotes[rng.Intn(len(demoNotes))]; n != "" {
			notes = n
		}
		_, err := tx.Exec(
			`INSERT INTO visits (restaurant_id, visited_on, rating, notes, would_return) VALUES (?, ?, ?, ?, ?)`,
			1+rng.Intn(len(demoNames)),
			start.AddDate(0, 0, rng.Intn(700)).Format("2006-01-02"),
			rating, notes, wouldReturn,
		)
		if err != nil {
			return fmt.Errorf("failed to insert demo visit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit demo data: %w", err)
	}
	return nil
}
