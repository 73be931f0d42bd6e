package config

const (
	// MaxChatTitleLength is the maximum length for chat titles.
	// Limited to 255 to fit in VARCHAR(255) and provide reasonable UX
	// (titles should be short and descriptive).
	MaxChatTitleLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	// Same limit as chat titles for consistency.
	MaxDocumentTitleLength = 255

	// MaxEmailLength is the maximum length for user email addresses.
	// 254 is the effective limit of RFC 5321 path lengths.
	MaxEmailLength = 254

	// MinPasswordLength is the minimum length for plaintext passwords
	// entering the user store.
	MinPasswordLength = 8

	// MaxPasswordLength caps plaintext passwords at bcrypt's 72-byte
	// input limit; longer inputs would be silently truncated by the hash.
	MaxPasswordLength = 72

	// DefaultPoolMaxConns and DefaultPoolMinConns size the pgx pool when
	// no override is configured.
	DefaultPoolMaxConns = 25
	DefaultPoolMinConns = 5

	// DefaultBcryptCost is the work factor for password hashing. It is
	// also the floor: file overrides may raise it but never lower it.
	DefaultBcryptCost = 10
)
