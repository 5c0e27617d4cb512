package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lifeline-sos/lifeline/auth"
	"github.com/lifeline-sos/lifeline/colors"
)

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		responseWriter := &ResponseWriterWithStatus{
			ResponseWriter: w,
			Status:         200,
		}

		defer func() {
			responseStatus := colors.Green(responseWriter.Status)
			if responseWriter.Status >= 400 {
				responseStatus = colors.Red(responseWriter.Status)
			}

			logg.Infof("%v %v %v %v",
				r.Method,
				r.RequestURI,
				responseStatus,
				colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))))
		}()

		w.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(responseWriter, r)
	})
}

// protectedRouteMiddleware requires a valid bearer token minted from the
// configured auth secret.
func (app *App) protectedRouteMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if errMsg := verifyAuthHeader(r.Header.Get("Authorization"), app.authSecret); errMsg != "" {
			writeResponse(w, ResponsePayload{Errors: []string{errMsg}}, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func verifyAuthHeader(authHeaderValue, secret string) string {
	authHeaderList := strings.Split(authHeaderValue, "Bearer ")
	if len(authHeaderList) < 2 {
		return "no token provided"
	}

	if _, err := auth.DecodeJWT(authHeaderList[1], secret); err != nil {
		return "invalid token provided"
	}

	return ""
}
