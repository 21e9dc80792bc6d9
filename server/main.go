package main

import (
	"net/http"
	"os"

	"github.com/ethereum/go-ethereum/log"

	"github.com/coinbase/smart-wallet/dumpkey/server/handlers"
)

// corsMiddleware adds CORS headers to the response
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/constants", corsMiddleware(handlers.HandleConstantsRequest))
	mux.HandleFunc("/fingerprint", corsMiddleware(handlers.HandleFingerprintRequest))
	return mux
}

func main() {
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelInfo, false)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, newMux()); err != nil {
		log.Crit("Server failed to start", "err", err)
	}
}
