package handler

import (
	"net/http"

	"github.com/vfg2006/competitor-intel-api/internal/scheduler"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/targeting"
	"github.com/vfg2006/competitor-intel-api/pkg/log"
)

// StatusMonitor é o monitor agendado de conectividade do banco
type StatusMonitor interface {
	LastStatus() *scheduler.StoreStatus
	GetStatus() map[string]any
	TriggerManualProbe()
}

// StatusServices reúne o necessário para os endpoints de status
type StatusServices struct {
	MetricsReader   insighting.MetricsReader
	TargetingReader targeting.IntelReader
	Monitor         StatusMonitor
}

// GetDatabaseStatus executa o health check das tabelas de métricas
func GetDatabaseStatus(services StatusServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := services.MetricsReader.TestDatabaseConnection(r.Context())
		writeJSON(w, r, http.StatusOK, Response{Data: report})
	})
}

// GetTargetingStatus executa o health check da tabela de inteligência de segmentação
func GetTargetingStatus(services StatusServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report := services.TargetingReader.TestTargetingIntelConnection(r.Context())
		writeJSON(w, r, http.StatusOK, Response{Data: report})
	})
}

// GetStoreStatus retorna o resultado da última verificação agendada
func GetStoreStatus(services StatusServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, Response{Data: map[string]any{
			"store":   services.Monitor.LastStatus(),
			"monitor": services.Monitor.GetStatus(),
		}})
	})
}

// RunStatusProbe dispara uma verificação fora do agendamento
func RunStatusProbe(services StatusServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).Info("status: manual probe requested")

		services.Monitor.TriggerManualProbe()

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Verificação de status iniciada",
		})
	})
}
