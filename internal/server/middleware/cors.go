package middleware

import (
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
)

type CorsParams struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

func Cors(params CorsParams) func(next http.Handler) http.Handler {
	return gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(params.AllowedOrigins),
		gorillaHandlers.AllowedMethods(params.AllowedMethods),
		gorillaHandlers.AllowedHeaders(params.AllowedHeaders),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
	)
}
