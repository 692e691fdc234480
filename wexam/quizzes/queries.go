package quizzes

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS quizzes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_id TEXT NOT NULL,
			class TEXT NOT NULL DEFAULT '',
			subject TEXT NOT NULL DEFAULT '',
			chapter TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			type TEXT NOT NULL,
			questions JSONB NOT NULL,
			total_questions INTEGER NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_quizzes_owner_created ON quizzes(owner_id, created_at DESC);
	`

	queryCreate = `
		INSERT INTO quizzes (owner_id, class, subject, chapter, difficulty, type, questions, total_questions)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8)
		RETURNING id, owner_id, class, subject, chapter, difficulty, type, questions, total_questions, created_at
	`

	queryCountByOwner = `
		SELECT COUNT(*) FROM quizzes WHERE owner_id = $1
	`

	queryList = `
		SELECT id, owner_id, class, subject, chapter, difficulty, type, questions, total_questions, created_at
		FROM quizzes
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	queryGet = `
		SELECT id, owner_id, class, subject, chapter, difficulty, type, questions, total_questions, created_at
		FROM quizzes
		WHERE id = $1 AND owner_id = $2
	`

	queryDelete = `
		DELETE FROM quizzes
		WHERE id = $1 AND owner_id = $2
	`
)
