package chat

import (
	"encoding/json"
	"net/http"
)

// Handler serves the connection data endpoint. An empty JID answers with a
// null body so clients skip initialization.
func Handler(data ConnData) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if data.JID == "" {
			_, _ = w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(data)
	}
}
