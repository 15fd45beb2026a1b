package migrations

import "gorm.io/gorm"

func GetLadderMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_10_000000_create_ladder_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TYPE time_category AS ENUM ('5min', '10min');
					CREATE TYPE match_result AS ENUM ('white_win', 'black_win', 'draw');
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(100) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS player_ratings (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						time_category time_category NOT NULL,
						current_elo INT NOT NULL DEFAULT 1000,
						peak_elo INT NOT NULL DEFAULT 1000,
						games_played INT NOT NULL DEFAULT 0,
						wins INT NOT NULL DEFAULT 0,
						losses INT NOT NULL DEFAULT 0,
						draws INT NOT NULL DEFAULT 0,
						updated_at TIMESTAMP DEFAULT NOW(),
						CONSTRAINT idx_player_time_category UNIQUE (player_id, time_category)
					);
					CREATE INDEX IF NOT EXISTS idx_player_ratings_category_elo ON player_ratings(time_category, current_elo);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						time_category time_category NOT NULL,
						white_player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						black_player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						result match_result NOT NULL,
						white_elo_before INT NOT NULL,
						black_elo_before INT NOT NULL,
						white_elo_after INT NOT NULL,
						black_elo_after INT NOT NULL,
						white_elo_change INT NOT NULL,
						black_elo_change INT NOT NULL,
						played_at TIMESTAMP NOT NULL,
						notes VARCHAR(500),
						created_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_matches_played_at ON matches(played_at);
					CREATE INDEX IF NOT EXISTS idx_matches_time_category ON matches(time_category);
					CREATE INDEX IF NOT EXISTS idx_matches_white_player ON matches(white_player_id);
					CREATE INDEX IF NOT EXISTS idx_matches_black_player ON matches(black_player_id);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS elo_history (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
						match_id BIGINT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
						time_category time_category NOT NULL,
						elo_before INT NOT NULL,
						elo_after INT NOT NULL,
						elo_change INT NOT NULL,
						recorded_at TIMESTAMP NOT NULL
					);
					CREATE INDEX IF NOT EXISTS idx_history_player_category ON elo_history(player_id, time_category);
					CREATE INDEX IF NOT EXISTS idx_history_recorded_at ON elo_history(recorded_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS elo_history;
					DROP TABLE IF EXISTS matches;
					DROP TABLE IF EXISTS player_ratings;
					DROP TABLE IF EXISTS players;
					DROP TYPE IF EXISTS match_result;
					DROP TYPE IF EXISTS time_category;
				`).Error
			},
		},
	}
}
