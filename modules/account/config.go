package account

// Config configures account creation.
type Config struct {
	BcryptCost int `env:"ACCOUNT_BCRYPT_COST" envDefault:"10"`
}
