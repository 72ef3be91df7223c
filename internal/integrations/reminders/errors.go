package reminders

import "errors"

var (
	// ErrEncodePayload возвращается при ошибке сериализации задачи
	ErrEncodePayload = errors.New("reminders: failed to encode payload")

	// ErrEnqueue возвращается при ошибке постановки задачи в очередь
	ErrEnqueue = errors.New("reminders: failed to enqueue task")
)
