package catalogRepository

const (
	querySearchProducts = `
		SELECT
			id,
			title,
			price,
			rating,
			stock,
			category,
			brand,
			discount_percentage,
			tags
		FROM products
		WHERE (:query = '' OR title ILIKE '%' || :query || '%' OR brand ILIKE '%' || :query || '%' OR tags::text ILIKE '%' || :query || '%')
			AND (:category = '' OR category = :category)
			AND (:min_price < 0 OR price >= :min_price)
			AND (:max_price < 0 OR price <= :max_price)
		ORDER BY rating DESC, price ASC
		LIMIT :limit
	`

	queryGetProductByID = `
		SELECT
			id,
			title,
			price,
			rating,
			stock,
			category,
			brand,
			discount_percentage,
			tags
		FROM products
		WHERE id = :id
	`

	queryListCategories = `
		SELECT DISTINCT category
		FROM products
		ORDER BY category ASC
	`
)
