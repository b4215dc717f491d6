package repository

const jobColumns = `
	id, company_id, client_id, job_number, status, priority, recipient_name, recipient_type,
	addresses, assigned_server_id, court_case_id, case_number, court_name, court_county,
	court_state, plaintiff, defendant, service_date, service_method, attempts_cache,
	due_date, created_at, updated_at`

const getJobQuery = `SELECT ` + jobColumns + `
	FROM jobs
	WHERE id = $1 AND company_id = $2`

const lockJobQuery = getJobQuery + `
	FOR UPDATE`

const listJobsFilter = `
	WHERE company_id = $1
		AND ($2::text IS NULL OR status = $2)
		AND ($3::uuid IS NULL OR assigned_server_id = $3)
		AND ($4::uuid IS NULL OR client_id = $4)
		AND ($5::text IS NULL OR recipient_name ILIKE $5 OR job_number ILIKE $5 OR case_number ILIKE $5)`

const countJobsQuery = `SELECT COUNT(*) FROM jobs` + listJobsFilter

const listJobsQuery = `SELECT ` + jobColumns + `
	FROM jobs` + listJobsFilter + `
	ORDER BY created_at DESC, id DESC
	LIMIT $6 OFFSET $7`

const listJobIDsQuery = `
	SELECT id FROM jobs
	WHERE company_id = $1 AND id > $2
	ORDER BY id
	LIMIT $3`

const listTenantIDsQuery = `SELECT DISTINCT company_id FROM jobs ORDER BY company_id`

const insertJobQuery = `
	INSERT INTO jobs (
		id, company_id, client_id, job_number, status, priority, recipient_name, recipient_type,
		addresses, assigned_server_id, court_case_id, case_number, court_name, court_county,
		court_state, plaintiff, defendant, due_date
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	RETURNING ` + jobColumns

const updateAssignmentQuery = `
	UPDATE jobs SET assigned_server_id = $3, status = $4, updated_at = now()
	WHERE id = $1 AND company_id = $2`

const updateStatusQuery = `
	UPDATE jobs SET status = $3, service_date = $4, service_method = $5, updated_at = now()
	WHERE id = $1 AND company_id = $2`

const refreshAttemptsCacheQuery = `
	UPDATE jobs SET attempts_cache = $3, updated_at = now()
	WHERE id = $1 AND company_id = $2`

const attemptColumns = `
	id, job_id, status, attempt_date, service_type_detail, service_method, person_served,
	gps_lat, gps_lon, gps_accuracy, server_id, server_name, address, notes, files, created_at`

const listAttemptsQuery = `SELECT ` + attemptColumns + `
	FROM attempts
	WHERE job_id = $1 AND company_id = $2
	ORDER BY attempt_date, created_at, id`

const getAttemptQuery = `SELECT ` + attemptColumns + `
	FROM attempts
	WHERE id = $1 AND job_id = $2 AND company_id = $3`

const insertAttemptQuery = `
	INSERT INTO attempts (
		id, job_id, company_id, status, attempt_date, service_type_detail, service_method,
		person_served, gps_lat, gps_lon, gps_accuracy, server_id, server_name, address, notes, files
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING ` + attemptColumns

const updateAttemptQuery = `
	UPDATE attempts SET
		status = $4, attempt_date = $5, service_type_detail = $6, service_method = $7,
		person_served = $8, gps_lat = $9, gps_lon = $10, gps_accuracy = $11, server_id = $12,
		server_name = $13, address = $14, notes = $15, files = $16, updated_at = now()
	WHERE id = $1 AND job_id = $2 AND company_id = $3
	RETURNING ` + attemptColumns

const listUntaggedAttemptsQuery = `SELECT company_id, ` + attemptColumns + `
	FROM attempts
	WHERE service_method = ''
	ORDER BY created_at, id
	LIMIT $1`

const setAttemptMethodQuery = `
	UPDATE attempts SET service_method = $3, updated_at = now()
	WHERE id = $1 AND company_id = $2`

const documentColumns = `id, job_id, title, category, object_key, content_type, size_bytes, page_count, created_at`

const insertDocumentQuery = `
	INSERT INTO job_documents (id, job_id, company_id, title, category, object_key, content_type, size_bytes, page_count)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + documentColumns

const listDocumentsQuery = `SELECT ` + documentColumns + `
	FROM job_documents
	WHERE job_id = $1 AND company_id = $2
	ORDER BY created_at, id`

const getDocumentQuery = `SELECT ` + documentColumns + `
	FROM job_documents
	WHERE id = $1 AND job_id = $2 AND company_id = $3`

const courtCaseColumns = `
	id, company_id, case_number, court_name, court_county, court_state, plaintiff, defendant, created_at, updated_at`

const insertCourtCaseQuery = `
	INSERT INTO court_cases (id, company_id, case_number, court_name, court_county, court_state, plaintiff, defendant)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + courtCaseColumns

const getCourtCaseQuery = `SELECT ` + courtCaseColumns + `
	FROM court_cases
	WHERE id = $1 AND company_id = $2`

const updateCourtCaseQuery = `
	UPDATE court_cases SET
		case_number = $3, court_name = $4, court_county = $5, court_state = $6,
		plaintiff = $7, defendant = $8, updated_at = now()
	WHERE id = $1 AND company_id = $2
	RETURNING ` + courtCaseColumns
