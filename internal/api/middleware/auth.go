package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/MedDir-SlotService/internal/api/handlers"
)

// HeaderDoctorID заголовок с идентификатором врача, проставляется API-шлюзом
const HeaderDoctorID = "X-Doctor-ID"

const msgUnauthorized = "требуется аутентификация"

type ctxKey int

const doctorIDKey ctxKey = iota

// Auth извлекает идентификатор врача из заголовка и кладёт его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderDoctorID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		doctorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || doctorID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), doctorIDKey, doctorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DoctorIDFromContext возвращает идентификатор врача, добавленный middleware Auth
func DoctorIDFromContext(ctx context.Context) (int64, bool) {
	doctorID, ok := ctx.Value(doctorIDKey).(int64)
	return doctorID, ok
}
