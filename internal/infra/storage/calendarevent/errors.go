package calendarevent

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendarevent.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendarevent.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendarevent.repository: failed to scan row")

	// ErrInvalidWindow возвращается, если окно синхронизации пустое или перевернуто
	ErrInvalidWindow = errors.New("calendarevent.repository: invalid sync window")
)
