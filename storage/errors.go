package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indica que o registro consultado não existe (ou, no caso do
// checkout, existe mas está inativo).
var ErrNotFound = errors.New("registro não encontrado")

// ConstraintViolationError cobre violações de integridade: chave estrangeira
// ausente ou token único duplicado.
type ConstraintViolationError struct {
	Constraint string
	Message    string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("violação de integridade (%s): %s", e.Constraint, e.Message)
}

// StorageError embrulha qualquer outra falha de persistência, preservando a
// mensagem do driver.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConstraintViolation(err error) bool {
	var cv *ConstraintViolationError
	return errors.As(err, &cv)
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// isDuplicateErr detecta colisão de índice único nos dois dialetos suportados
// (sqlite3 e postgres) sem depender de tipos específicos do driver.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
