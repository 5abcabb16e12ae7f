package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedRequest возвращается, если запрос команды не соответствует схеме.
var ErrMalformedRequest = errors.New("malformed request")

// FSM описывает состояние диалога, которым управляет оркестратор.
// Расширение только читает и переписывает его, своих сессий не хранит.
type FSM struct {
	State string            `json:"state"`
	Slots map[string]string `json:"slots"`
}

// Question описывает исходную реплику пользователя, полученную оркестратором.
type Question struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Request описывает вызов команды расширения.
type Request struct {
	Command  string            `json:"command"`
	FSM      *FSM              `json:"fsm"`
	Domain   map[string]string `json:"domain"`
	Question *Question         `json:"question,omitempty"`
}

// Validate проверяет поля, на которые опирается любая команда.
func (r *Request) Validate() error {
	if r.Command == "" {
		return fmt.Errorf("%w: command is required", ErrMalformedRequest)
	}
	if r.FSM == nil {
		return fmt.Errorf("%w: fsm is required", ErrMalformedRequest)
	}
	return nil
}

// Slot возвращает значение слота или пустую строку, если слота нет.
func (r *Request) Slot(name string) string {
	if r.FSM == nil {
		return ""
	}
	return r.FSM.Slots[name]
}

// Sender возвращает отправителя, если оркестратор его передал.
func (r *Request) Sender() string {
	if r.Question == nil {
		return ""
	}
	return r.Question.Sender
}

// Answer описывает одно сообщение пользователю.
type Answer struct {
	Text string `json:"text"`
}

// Response описывает ответ расширения.
type Response struct {
	FSM     *FSM     `json:"fsm"`
	Answers []Answer `json:"answers"`
}

// ErrorResponse описывает тело ответа 400 на некорректный запрос.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BuildInfo описывает сборку сервиса.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	BuiltAt string `json:"built_at"`
	BuiltBy string `json:"built_by"`
}

// Result описывает одну завершённую викторину.
type Result struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats группирует завершённые викторины по числу правильных ответов.
type Stats struct {
	Total   int         `json:"total"`
	ByScore map[int]int `json:"by_score"`
}
