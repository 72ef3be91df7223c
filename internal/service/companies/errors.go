package companies

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("companies: company not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("companies: internal error")
)
