package database

import sq "github.com/Masterminds/squirrel"

// PSQL is the statement builder used by all repositories.
var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	UsersTable       = "users"
	EventsTable      = "events"
	AttendeesTable   = "attendees"
	CredentialsTable = "user_credentials"
)
