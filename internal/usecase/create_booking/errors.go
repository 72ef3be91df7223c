package create_booking

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrServiceNotFound возвращается, когда услуга с указанным названием не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidTimeFormat возвращается, когда время начала не удалось разобрать
	ErrInvalidTimeFormat = errors.New("create_booking: invalid start time format")

	// ErrPastBooking возвращается, когда время начала уже прошло
	ErrPastBooking = errors.New("create_booking: start time is in the past")

	// ErrSlotUnavailable возвращается, когда лимит одновременных бронирований исчерпан
	ErrSlotUnavailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrPersistence возвращается при ошибках хранилища
	ErrPersistence = errors.New("create_booking: persistence failure")
)

// исходы для метрики booking_commits_total
const (
	outcomeCreated         = "created"
	outcomeRejected        = "rejected"
	outcomeSlotUnavailable = "slot_unavailable"
	outcomePersistence     = "persistence_failure"
)
