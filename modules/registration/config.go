package registration

// Config configures the registration service.
type Config struct {
	// SuccessURL is where accepted registrations are redirected.
	SuccessURL string `env:"REGISTRATION_SUCCESS_URL" envDefault:"/register/success"`

	// MinPasswordLength is the minimum password length in characters.
	MinPasswordLength int `env:"REGISTRATION_MIN_PASSWORD_LENGTH" envDefault:"8"`
}

const (
	RegisterPath = "/register"
	SuccessPath  = "/register/success"
)

func (c Config) withDefaults() Config {
	if c.SuccessURL == "" {
		c.SuccessURL = SuccessPath
	}
	if c.MinPasswordLength < 1 {
		c.MinPasswordLength = DefaultMinPasswordLength
	}
	return c
}
