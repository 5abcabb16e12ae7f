package store

import (
	"context"
	"errors"

	"github.com/wurt83ow/trivia-ext/internal/models"
)

//go:generate mockgen -destination=mock/store.go -package=mock github.com/wurt83ow/trivia-ext/internal/store Store

// ErrConflict указывает на конфликт данных в хранилище.
var ErrConflict = errors.New("data conflict")

// Store описывает журнал завершённых викторин.
type Store interface {
	// SaveResult сохраняет результат одной викторины
	SaveResult(ctx context.Context, r models.Result) error
	// Stats возвращает распределение результатов по числу правильных ответов
	Stats(ctx context.Context) (models.Stats, error)
}
