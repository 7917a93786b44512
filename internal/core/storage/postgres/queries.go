package postgres

// SQL for the object_types reference table and the append-only results table.

const (
	// querySeedObjectType inserts one reference row; repeated seeding is a no-op.
	querySeedObjectType = `
		INSERT INTO object_types (object_type, ordinal)
		VALUES ($1, $2)
		ON CONFLICT (object_type) DO NOTHING
	`

	// queryInsertResult appends one total. There is deliberately no conflict
	// clause: re-running a load duplicates rows instead of updating them.
	queryInsertResult = `
		INSERT INTO results (object_type, object_id, cost)
		VALUES ($1, $2, $3)
	`

	queryTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		)
	`

	queryListResults = `
		SELECT result_id, object_type, object_id, cost
		FROM results
		WHERE object_type = $1
		  AND ($2 = '' OR object_id = $2)
		ORDER BY result_id ASC
		LIMIT $3
	`

	querySummarizeResults = `
		SELECT
			r.object_type,
			COUNT(*),
			COUNT(DISTINCT r.object_id),
			COALESCE(SUM(r.cost), 0)
		FROM results r
		JOIN object_types t ON t.object_type = r.object_type
		GROUP BY r.object_type, t.ordinal
		ORDER BY t.ordinal ASC
	`
)
