package handler

import (
	"errors"
	"net/http"

	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/usecases/seeding"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/apiErrors"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/log"
	"github.com/alfiomartini/nextjs-official-tutorial/pkg/middleware"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const seedSuccessMessage = "Banco de dados populado com sucesso"

// SeedScheduler dispara execuções do seed em segundo plano
type SeedScheduler interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

type SeedResponse struct {
	Message string              `json:"message"`
	Summary *domain.SeedSummary `json:"summary"`
}

type SeedStatusResponse struct {
	Tables    []domain.TableStatus `json:"tables"`
	Scheduler map[string]any       `json:"scheduler,omitempty"`
}

// SeedErrorDetails repassa ao cliente a causa original da falha
type SeedErrorDetails struct {
	Stage    string `json:"stage,omitempty"`
	Error    string `json:"error"`
	SQLState string `json:"sqlstate,omitempty"`
}

// SeedDatabase executa o seed de forma síncrona
func SeedDatabase(seeder seeding.Seeder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).Info("INIT - SeedDatabase")

		summary, err := seeder.Seed(r.Context())
		if err != nil {
			writeSeedError(w, "Erro ao popular banco de dados", err)
			return
		}

		writeJSON(w, http.StatusOK, SeedResponse{
			Message: seedSuccessMessage,
			Summary: summary,
		})
	}
}

func GetSeedStatus(seeder seeding.Seeder, syncService SeedScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := seeder.Status(r.Context())
		if err != nil {
			writeSeedError(w, "Erro ao consultar status das tabelas", err)
			return
		}

		response := SeedStatusResponse{Tables: status.Tables}
		if syncService != nil {
			response.Scheduler = syncService.GetStatus()
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// RunSeed dispara o seed em segundo plano e responde imediatamente
func RunSeed(syncService SeedScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestLogger(r).Info("INIT - RunSeed")

		if syncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Agendador do seed não disponível", nil)
			return
		}

		if !syncService.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrSeedInProgress, "Seed já em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Seed iniciado em segundo plano",
		})
	}
}

// requestLogger identifica quem pediu o seed quando a rota exige token
func requestLogger(r *http.Request) log.Logger {
	logger := log.ForContext(r.Context())
	if subject := middleware.Subject(r.Context()); subject != "" {
		logger = logger.WithField("requested_by", subject)
	}

	return logger
}

func writeSeedError(w http.ResponseWriter, message string, err error) {
	details := SeedErrorDetails{Error: err.Error()}

	var seedErr *seeding.SeedError
	if errors.As(err, &seedErr) {
		details = SeedErrorDetails{
			Stage:    string(seedErr.Stage),
			Error:    seedErr.Cause.Error(),
			SQLState: seedErr.SQLState,
		}
	}

	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, message, details)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("Erro ao escrever resposta")
	}
}
