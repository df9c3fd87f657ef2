// Package sanitizer normalizes user input before validation and masks
// personal data before it is logged.
//
// Functions are pure string transforms with no shared state:
//
//	username := sanitizer.Trim(req.Username)
//	log.Info("registered", slog.String("email", sanitizer.MaskEmail(email)))
package sanitizer
