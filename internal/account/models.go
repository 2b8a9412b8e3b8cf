package account

// Account is a registered user. The password hash never leaves this package
// through the web layer.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
}
