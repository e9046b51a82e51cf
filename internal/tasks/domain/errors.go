package domain

import "errors"

var (
	ErrNotFound = errors.New("task not found")
)

const (
	MsgNotFound        = "Tarea no encontrada"
	MsgNameRequired    = "El nombre es obligatorio"
	MsgProjectRequired = "El proyecto es obligatorio"
	MsgDeleted         = "Tarea eliminada"
)
