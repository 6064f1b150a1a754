package handlers

import (
	"encoding/json"
	"net/http"
)

// Envelope is the fixed {title, message, data} wrapper used by every
// mutating endpoint.
type Envelope struct {
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type DataEnvelope struct {
	Data interface{} `json:"data"`
}

type ListEnvelope struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Title: "Error", Message: message})
}
