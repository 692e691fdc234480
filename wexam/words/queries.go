package words

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS saved_words (
			user_id TEXT NOT NULL,
			word_id TEXT NOT NULL,
			word TEXT NOT NULL,
			entry JSONB NOT NULL DEFAULT '{}'::jsonb,
			saved_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, word_id)
		);
		CREATE TABLE IF NOT EXISTS search_history (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			word TEXT NOT NULL,
			searched_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_search_history_user ON search_history(user_id, searched_at DESC);
	`

	querySave = `
		INSERT INTO saved_words (user_id, word_id, word, entry)
		VALUES ($1, $2, $3, $4::jsonb)
		ON CONFLICT (user_id, word_id)
		DO UPDATE SET word = EXCLUDED.word, entry = EXCLUDED.entry, saved_at = NOW()
		RETURNING word_id, word, entry, saved_at
	`

	queryRemove = `
		DELETE FROM saved_words
		WHERE user_id = $1 AND word_id = $2
	`

	queryExists = `
		SELECT EXISTS(SELECT 1 FROM saved_words WHERE user_id = $1 AND word_id = $2)
	`

	queryList = `
		SELECT word_id, word, entry, saved_at
		FROM saved_words
		WHERE user_id = $1
		ORDER BY saved_at DESC
	`

	queryAddHistory = `
		INSERT INTO search_history (user_id, word)
		VALUES ($1, $2)
		RETURNING word, searched_at
	`

	queryHistory = `
		SELECT word, searched_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY searched_at DESC
		LIMIT $2
	`
)
