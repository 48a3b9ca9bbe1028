package domain

// Principal is the request-scoped authenticatable view over a User. It lives
// only for the duration of one authentication attempt and is never persisted.
type Principal struct {
	Username     string
	PasswordHash string
	Enabled      bool
	// Authorities holds the principal's role claims in resolution order.
	// The current data model yields exactly one entry (the role name verbatim),
	// but consumers take "first" so the contract survives multi-role principals.
	Authorities []string
	UserID      string
}
