package entities

// Credential is a static username to password-hash pair. The hash is a
// bcrypt digest; plaintext passwords are never stored.
type Credential struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}
