package models

import (
	"errors"
	"fmt"
)

// Ошибки слоя хранения. Сервис переводит их в ErrorKind.
var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrConditionFailed   = errors.New("conditional update matched no rows")
	ErrDuplicateResponse = errors.New("workshop already responded")
)

// ErrorKind - категория ошибки, видимая клиенту API
type ErrorKind string

const (
	KindInvalidRequest       ErrorKind = "InvalidRequest"
	KindNotFound             ErrorKind = "NotFound"
	KindNotACandidate        ErrorKind = "NotACandidate"
	KindAlreadyResolved      ErrorKind = "AlreadyResolved"
	KindAlreadyAccepted      ErrorKind = "AlreadyAccepted"
	KindInvalidTransition    ErrorKind = "InvalidTransition"
	KindDirectoryUnavailable ErrorKind = "DirectoryUnavailable"
	KindNotificationFailure  ErrorKind = "NotificationFailure"
)

// Error - доменная ошибка диспетчера
type Error struct {
	Kind    ErrorKind
	Message string
	// AcceptedWorkshopID заполнен только для KindAlreadyAccepted
	AcceptedWorkshopID string
	Err                error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is сравнивает ошибки по Kind, чтобы errors.Is(err, ErrNotFound) работал для любых сообщений
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Эталонные значения для errors.Is
var (
	ErrInvalidRequest       = &Error{Kind: KindInvalidRequest}
	ErrNotFound             = &Error{Kind: KindNotFound}
	ErrNotACandidate        = &Error{Kind: KindNotACandidate}
	ErrAlreadyResolved      = &Error{Kind: KindAlreadyResolved}
	ErrAlreadyAccepted      = &Error{Kind: KindAlreadyAccepted}
	ErrInvalidTransition    = &Error{Kind: KindInvalidTransition}
	ErrDirectoryUnavailable = &Error{Kind: KindDirectoryUnavailable}
	ErrNotificationFailure  = &Error{Kind: KindNotificationFailure}
)

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError создаёт доменную ошибку поверх инфраструктурной
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// AlreadyAcceptedError - ошибка проигравшей стороны гонки с id победителя
func AlreadyAcceptedError(winner string) *Error {
	return &Error{
		Kind:               KindAlreadyAccepted,
		Message:            "request already accepted by another provider",
		AcceptedWorkshopID: winner,
	}
}

// AsError извлекает доменную ошибку из цепочки
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
