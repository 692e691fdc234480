package users

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			photo_url TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
	`

	// words_learned is derived from saved words so it can never drift
	userColumns = `
		u.id, u.email, u.name, COALESCE(u.photo_url, ''),
		(SELECT COUNT(*) FROM saved_words w WHERE w.user_id = u.id),
		u.created_at
	`

	queryInsertIfMissing = `
		INSERT INTO users (id, email, name, photo_url)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (id) DO NOTHING
	`

	queryFindByID = `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	queryUpdateProfile = `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
			photo_url = CASE WHEN $3::text IS NULL THEN photo_url ELSE NULLIF($3, '') END,
			updated_at = NOW()
		WHERE id = $1
	`
)
