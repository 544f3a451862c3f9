package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vfg2006/crm-intelligence-api/infrastructure/repository"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
	"github.com/vfg2006/crm-intelligence-api/internal/usecases/balancing"
	"github.com/vfg2006/crm-intelligence-api/pkg/apiErrors"
	"github.com/vfg2006/crm-intelligence-api/pkg/log"
)

// GetCustomerBalances retorna a conta-corrente de todos os clientes ativos.
// O filtro opcional ?status=receivable|payable|settled restringe o resultado.
func GetCustomerBalances(loader repository.SnapshotLoader, service balancing.Balancer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("balances: building customer balances")

		statusFilter := r.URL.Query().Get("status")
		switch domain.BalanceStatus(statusFilter) {
		case "", domain.BalanceStatusReceivable, domain.BalanceStatusPayable, domain.BalanceStatusSettled:
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest,
				"Status inválido. Valores aceitos: receivable, payable, settled", nil)
			return
		}

		snapshot, err := loader.Load(r.Context())
		if err != nil {
			logger.WithField("error", err.Error()).Error("balances: failed to load snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar os dados do CRM", nil)
			return
		}

		balances := service.CustomerBalances(snapshot, time.Now())

		if statusFilter != "" {
			filtered := make([]*domain.CustomerBalance, 0, len(balances))
			for _, balance := range balances {
				if balance.Status == domain.BalanceStatus(statusFilter) {
					filtered = append(filtered, balance)
				}
			}
			balances = filtered
		}

		logger.WithField("balances", len(balances)).Info("balances: customer balances built")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(balances); err != nil {
			logger.WithField("error", err.Error()).Error("balances: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetBalancesSummary retorna o consolidado da posição financeira de todos os
// clientes
func GetBalancesSummary(loader repository.SnapshotLoader, service balancing.Balancer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("balances: building balances summary")

		snapshot, err := loader.Load(r.Context())
		if err != nil {
			logger.WithField("error", err.Error()).Error("balances: failed to load snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar os dados do CRM", nil)
			return
		}

		now := time.Now()
		summary := service.Summary(service.CustomerBalances(snapshot, now), now)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logger.WithField("error", err.Error()).Error("balances: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
