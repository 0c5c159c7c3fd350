package service

import "regexp"

var (
	// usernamePattern acepta letras, dígitos, guion y guion bajo, 4 a 20 caracteres.
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{4,20}$`)
	// mobilePattern valida números móviles de China continental.
	mobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidUsername indica si el valor cumple el formato de nombre de usuario.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidMobile indica si el valor es un número móvil válido.
func IsValidMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

// IsValidEmail indica si el valor es un correo sintácticamente válido.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
