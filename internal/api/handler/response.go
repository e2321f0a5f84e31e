package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/pkg/log"
	"github.com/vfg2006/competitor-intel-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Response é o envelope das leituras: o dado sempre renderizável e a origem dele
type Response struct {
	Data   any                `json:"data"`
	Status *domain.ReadStatus `json:"status,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("response: failed to encode payload")
	}
}

func writeRead(w http.ResponseWriter, r *http.Request, data any, status domain.ReadStatus) {
	w.Header().Set(middleware.DataSourceHeader, string(status.Source))
	writeJSON(w, r, http.StatusOK, Response{Data: data, Status: &status})
}
