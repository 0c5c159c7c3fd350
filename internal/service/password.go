package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher produce la representación almacenable de una contraseña.
type PasswordHasher func(plain string) (string, error)

// PasswordVerifier compara una contraseña candidata con la credencial almacenada.
type PasswordVerifier func(candidate, stored string) bool

// BcryptHasher genera un hash bcrypt con el costo por defecto.
func BcryptHasher(plain string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// BcryptVerifier valida una contraseña contra su hash bcrypt.
func BcryptVerifier(candidate, stored string) bool {
	if stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
