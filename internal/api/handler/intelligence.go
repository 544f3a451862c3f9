package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/crm-intelligence-api/infrastructure/repository"
	"github.com/vfg2006/crm-intelligence-api/internal/usecases/forecasting"
	"github.com/vfg2006/crm-intelligence-api/internal/usecases/profiling"
	"github.com/vfg2006/crm-intelligence-api/pkg/apiErrors"
	"github.com/vfg2006/crm-intelligence-api/pkg/log"
)

// GetHealthProfiles retorna o perfil de saúde de todos os clientes ativos
func GetHealthProfiles(loader repository.SnapshotLoader, service profiling.Profiler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("intelligence: building customer health profiles")

		snapshot, err := loader.Load(r.Context())
		if err != nil {
			logger.WithField("error", err.Error()).Error("intelligence: failed to load snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar os dados do CRM", nil)
			return
		}

		profiles := service.BuildProfiles(snapshot, time.Now())

		logger.WithField("profiles", len(profiles)).Info("intelligence: profiles built")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(profiles); err != nil {
			logger.WithField("error", err.Error()).Error("intelligence: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetDailyActions recalcula e retorna a lista ranqueada de ações do dia
func GetDailyActions(loader repository.SnapshotLoader, service profiling.ActionGenerator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("intelligence: generating daily actions")

		snapshot, err := loader.Load(r.Context())
		if err != nil {
			logger.WithField("error", err.Error()).Error("intelligence: failed to load snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar os dados do CRM", nil)
			return
		}

		actions := service.GenerateDailyActions(snapshot, time.Now())

		logger.WithField("actions", len(actions)).Info("intelligence: daily actions generated")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(actions); err != nil {
			logger.WithField("error", err.Error()).Error("intelligence: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetMonthlyForecast retorna a projeção de receita do mês corrente
func GetMonthlyForecast(loader repository.SnapshotLoader, service forecasting.Forecaster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("intelligence: computing monthly forecast")

		snapshot, err := loader.Load(r.Context())
		if err != nil {
			logger.WithField("error", err.Error()).Error("intelligence: failed to load snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar os dados do CRM", nil)
			return
		}

		forecast := service.MonthlyForecast(snapshot, time.Now())

		logger.WithFields(log.Fields{
			"period":   forecast.Period,
			"run_rate": forecast.RunRate,
		}).Info("intelligence: monthly forecast computed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(forecast); err != nil {
			logger.WithField("error", err.Error()).Error("intelligence: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
