package domain

import "errors"

var (
	ErrNotFound = errors.New("project not found")
)

const (
	MsgNotFound     = "Proyecto no encontrado"
	MsgUnauthorized = "No autorizado"
	MsgNameRequired = "El nombre del proyecto es obligatorio"
	MsgDeleted      = "Proyecto eliminado"
)
