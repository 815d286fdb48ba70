package guidelineRepository

const (
	queryCreateGuideline = `
		INSERT INTO guidelines (
			id,
			name,
			content,
			priority,
			category,
			is_active,
			tags,
			conditions,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:content,
			:priority,
			:category,
			:is_active,
			:tags,
			:conditions,
			:created_at,
			:updated_at
		)
	`

	queryGetGuidelineByID = `
		SELECT
			id,
			name,
			content,
			priority,
			category,
			is_active,
			tags,
			conditions,
			created_at,
			updated_at
		FROM guidelines
		WHERE id = :id
	`

	queryGetAllGuidelines = `
		SELECT
			id,
			name,
			content,
			priority,
			category,
			is_active,
			tags,
			conditions,
			created_at,
			updated_at
		FROM guidelines
		ORDER BY priority DESC, created_at ASC
	`

	queryGetActiveGuidelines = `
		SELECT
			id,
			name,
			content,
			priority,
			category,
			is_active,
			tags,
			conditions,
			created_at,
			updated_at
		FROM guidelines
		WHERE is_active = TRUE
		ORDER BY priority DESC, created_at ASC
	`

	queryUpdateGuideline = `
		UPDATE guidelines
		SET
			name = :name,
			content = :content,
			priority = :priority,
			category = :category,
			is_active = :is_active,
			tags = :tags,
			conditions = :conditions,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteGuideline = `
		DELETE FROM guidelines
		WHERE id = :id
	`
)
