package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"github.com/vfg2006/competitor-intel-api/internal/usecases/targeting"
	"github.com/vfg2006/competitor-intel-api/pkg/apiErrors"
	"github.com/vfg2006/competitor-intel-api/pkg/log"
)

func ListTargetingIntel(service targeting.IntelReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, status := service.FetchAll(r.Context())
		writeRead(w, r, list, status)
	})
}

func GetLatestTargetingIntel(service targeting.IntelReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		intel, status := service.FetchLatest(r.Context())
		writeRead(w, r, intel, status)
	})
}

func GetCompetitorTargetingIntel(service targeting.IntelReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		competitorID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		intel, status := service.FetchByCompetitorID(r.Context(), competitorID)
		if intel == nil {
			logger.WithField("competitor_id", competitorID).Info("targeting: no intel found for competitor")
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhuma inteligência de segmentação para o concorrente", status)
			return
		}

		writeRead(w, r, intel, status)
	})
}

func SearchTargetingIntel(service targeting.IntelReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro name é obrigatório", nil)
			return
		}

		intel, status := service.FetchByCompetitorName(r.Context(), name)
		if intel == nil {
			logger.WithField("name", name).Info("targeting: no intel matches competitor name")
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhum concorrente corresponde à busca", status)
			return
		}

		writeRead(w, r, intel, status)
	})
}

func CreateTargetingIntel(service targeting.IntelReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var intel domain.TargetingIntel
		if err := json.NewDecoder(r.Body).Decode(&intel); err != nil {
			logger.WithError(err).Warn("targeting: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		created, err := service.Create(r.Context(), &intel)
		if err != nil {
			logger.WithFields(log.Fields{
				"operation":     targeting.OperationCreate,
				"competitor_id": intel.CompetitorID,
				"error":         err.Error(),
			}).Error("targeting: failed to create intel")

			switch {
			case errors.Is(err, targeting.ErrStoreUnavailable):
				apiErrors.WriteError(w, apiErrors.ErrStoreUnavailable, "Banco não configurado, gravação indisponível", nil)
			case targeting.IsValidationError(err):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar inteligência de segmentação", nil)
			}
			return
		}

		logger.WithField("competitor_id", created.CompetitorID).Info("targeting: intel created")
		writeJSON(w, r, http.StatusCreated, Response{Data: created})
	})
}
