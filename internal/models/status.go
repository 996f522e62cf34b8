package models

// Status - состояние заявки
type Status string

const (
	StatusBroadcasting Status = "broadcasting"
	StatusAccepted     Status = "accepted"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
	StatusExpired      Status = "expired"
)

// transitions - допустимые переходы. Из терминальных состояний переходов нет.
var transitions = map[Status][]Status{
	StatusBroadcasting: {StatusAccepted, StatusCancelled, StatusExpired},
	StatusAccepted:     {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusBroadcasting, StatusAccepted, StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// CanTransitionTo сообщает, разрешён ли переход s -> next
func (s Status) CanTransitionTo(next Status) bool {
	for _, to := range transitions[s] {
		if to == next {
			return true
		}
	}
	return false
}

// SourcesOf возвращает состояния, из которых можно перейти в target
func SourcesOf(target Status) []Status {
	var from []Status
	for _, s := range []Status{StatusBroadcasting, StatusAccepted} {
		if s.CanTransitionTo(target) {
			from = append(from, s)
		}
	}
	return from
}

// HoldsAcceptance - состояния, в которых у заявки есть принявшая мастерская
func (s Status) HoldsAcceptance() bool {
	return s == StatusAccepted || s == StatusCompleted
}
