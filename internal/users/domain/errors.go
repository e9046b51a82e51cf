package domain

import "errors"

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

const (
	MsgUserExists      = "El usuario ya existe"
	MsgUserNotFound    = "El usuario no existe"
	MsgWrongPassword   = "Password incorrecto"
	MsgNameRequired    = "El nombre es obligatorio"
	MsgEmailInvalid    = "Agrega un email válido"
	MsgPasswordLength  = "El password debe ser mínimo de 6 caracteres"
	MsgPasswordTooLong = "El password debe tener máximo 72 caracteres"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72
