package results

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS quiz_results (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id TEXT NOT NULL,
			quiz_id TEXT,
			score INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
			total INTEGER NOT NULL CHECK (total >= 0),
			correct INTEGER NOT NULL CHECK (correct >= 0),
			wrong INTEGER NOT NULL CHECK (wrong >= 0),
			time_elapsed INTEGER NOT NULL DEFAULT 0,
			subject TEXT NOT NULL DEFAULT '',
			chapter TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_quiz_results_user_created ON quiz_results(user_id, created_at DESC);
	`

	queryCreate = `
		INSERT INTO quiz_results (user_id, quiz_id, score, total, correct, wrong, time_elapsed, subject, chapter, difficulty, type)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, user_id, COALESCE(quiz_id, ''), score, total, correct, wrong, time_elapsed, subject, chapter, difficulty, type, created_at
	`

	queryListRecent = `
		SELECT id, user_id, COALESCE(quiz_id, ''), score, total, correct, wrong, time_elapsed, subject, chapter, difficulty, type, created_at
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
)
