package commitlog

import "errors"

var (
	// ErrCommitNotFound возвращается, когда запись журнала не найдена
	ErrCommitNotFound = errors.New("commitlog.repository: commit attempt not found")

	// ErrDuplicateKey возвращается при попытке создать запись
	// с уже существующим ключом идемпотентности
	ErrDuplicateKey = errors.New("commitlog.repository: idempotency key already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("commitlog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("commitlog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("commitlog.repository: failed to scan row")
)
