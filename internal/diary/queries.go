package diary

const (
	queryInsertEntry = `
		INSERT INTO diaries (user_id, content, image_url, prompt, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, content, image_url, prompt, created_at
	`

	queryCountForWindow = `
		SELECT COUNT(*)
		FROM diaries
		WHERE user_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
	`

	queryUserLevel = `
		SELECT level
		FROM profiles
		WHERE id = $1
	`
)
