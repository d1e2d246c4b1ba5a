package middleware

import "github.com/gorilla/mux"

// Standard middleware роутера в порядке подключения.
// Metrics стоит снаружи Recover: ответ 500 после паники тоже попадает в метрики.
// recorder == nil - метрики выключены
func Standard(recorder MetricsRecorder, logger Logger) []mux.MiddlewareFunc {
	if recorder == nil {
		return []mux.MiddlewareFunc{Recover(logger)}
	}
	return []mux.MiddlewareFunc{Metrics(recorder), Recover(logger)}
}
