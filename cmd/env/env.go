package env

const (
	// Prefix is the prefix of every pbrates environment variable
	Prefix = "PBRATES"

	// DBURLSuffix is the suffix of the PostgreSQL connection string variable
	DBURLSuffix = "_DB_URL"
)
