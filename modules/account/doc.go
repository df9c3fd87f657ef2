// Package account turns accepted registrations into stored accounts.
//
// Service.Register is a registration.SubmitFunc: it hashes the password
// with bcrypt and hands the account to a Storage. Username and email are
// unique; a clash comes back as a handler.ValidationError naming the field,
// which the registration form renders next to the offending input.
//
//	store := account.NewPGStorage(pool)
//	accounts := account.NewService(store, account.WithLogger(log))
//
//	registration.NewService(cfg, registration.WithOnSubmit(accounts.Register))
//
// MemoryStorage serves development setups without a database. Migrations
// holds the goose migrations for PGStorage.
package account
