package assistantRepository

const (
	queryCreateConversation = `
		INSERT INTO conversations (
			id,
			messages,
			context,
			created_at,
			updated_at
		) VALUES (
			:id,
			:messages,
			:context,
			:created_at,
			:updated_at
		)
	`

	queryGetConversationByID = `
		SELECT
			id,
			messages,
			context,
			created_at,
			updated_at
		FROM conversations
		WHERE id = :id
	`

	queryUpdateConversation = `
		UPDATE conversations
		SET
			messages = :messages,
			context = :context,
			updated_at = :updated_at
		WHERE id = :id
	`
)
