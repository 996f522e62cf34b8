package models

import (
	"slices"
	"time"
)

// DeadlineGuard - условие на expires_at при переходе
type DeadlineGuard int

const (
	// DeadlineIgnored - срок не проверяется
	DeadlineIgnored DeadlineGuard = iota
	// DeadlineOpen - переход разрешён только пока expires_at > At
	DeadlineOpen
	// DeadlinePassed - переход разрешён только когда expires_at <= At
	DeadlinePassed
)

// Transition описывает условный переход состояния заявки.
// Хранилище применяет его атомарно: либо условие выполнено и все поля
// записаны вместе с ответом мастерской, либо не записано ничего.
type Transition struct {
	From     []Status
	To       Status
	At       time.Time
	Deadline DeadlineGuard

	// AcceptedWorkshopID обязателен для перехода в accepted
	AcceptedWorkshopID string
	// Response добавляется в ту же транзакцию, если задан
	Response *WorkshopResponse
	Reason   string
	By       string
}

// Allows проверяет условие перехода для текущего состояния записи
func (t Transition) Allows(current Status, expiresAt time.Time) bool {
	if !slices.Contains(t.From, current) || !current.CanTransitionTo(t.To) {
		return false
	}
	switch t.Deadline {
	case DeadlineOpen:
		return expiresAt.After(t.At)
	case DeadlinePassed:
		return !expiresAt.After(t.At)
	}
	return true
}

// Apply записывает результат перехода в запись. Вызывается только после Allows.
func (t Transition) Apply(r *EmergencyRequest) {
	at := t.At
	r.Status = t.To
	switch t.To {
	case StatusAccepted:
		id := t.AcceptedWorkshopID
		r.AcceptedWorkshopID = &id
		r.AcceptedAt = &at
	case StatusCompleted, StatusExpired, StatusCancelled:
		r.ResolvedAt = &at
		r.ResolvedBy = t.By
		if t.To == StatusCancelled {
			r.CancelReason = t.Reason
			// после отмены у заявки нет принявшей мастерской, история остаётся в responses
			r.AcceptedWorkshopID = nil
		}
	}
	if t.Response != nil {
		r.Responses = append(r.Responses, *t.Response)
	}
}

// TransitionResult - итог успешного перехода
type TransitionResult struct {
	Request *EmergencyRequest
	From    Status
	// PreviousAcceptedWorkshopID - мастерская, принявшая заявку до перехода
	PreviousAcceptedWorkshopID string
}
