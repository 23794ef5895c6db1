// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/client"
	"github.com/Netcracker/qubership-validation-dashboard/controller"
	"github.com/Netcracker/qubership-validation-dashboard/db"
	"github.com/Netcracker/qubership-validation-dashboard/repository"
	"github.com/Netcracker/qubership-validation-dashboard/security"
	"github.com/Netcracker/qubership-validation-dashboard/service"
	"github.com/Netcracker/qubership-validation-dashboard/utils"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
}

func main() {
	readyChan := make(chan bool)
	systemInfoService, err := service.NewSystemInfoService()
	if err != nil {
		panic(err)
	}
	if logLevel := systemInfoService.GetLogLevel(); logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			log.Warnf("Unknown log level %s, using info", logLevel)
			level = log.InfoLevel
		}
		log.SetLevel(level)
	}

	if err := security.SetupGoGuardian(systemInfoService.GetApiKeys()); err != nil {
		log.Fatalf("Failed to setup api key authentication: %v", err)
	}

	combinedRules, err := service.LoadCombinedRules(systemInfoService.GetCombinedRulesPath())
	if err != nil {
		log.Fatalf("%v", err)
	}

	var cp db.ConnectionProvider
	var runRepository repository.ValidationRunRepository
	var summaryRepository repository.SummaryRepository
	if systemInfoService.IsPersistenceEnabled() {
		cp = db.NewConnectionProvider(systemInfoService.GetCredsFromEnv())
		runRepository = repository.NewValidationRunRepository(cp)
		summaryRepository = repository.NewSummaryRepository(cp)
	} else {
		log.Info("DB_HOST is not set, validation history is disabled")
	}

	apiClient := client.NewValidationApiClient(
		systemInfoService.GetValidationApiUrl(),
		systemInfoService.GetValidationApiKey(),
		systemInfoService.GetValidationApiTimeout())

	schemaService, err := service.NewSchemaService()
	if err != nil {
		log.Fatalf("Failed to build raw results schema: %v", err)
	}
	tableService := service.NewTableService(schemaService)
	combinedRuleService := service.NewCombinedRuleService(combinedRules)
	validationService := service.NewValidationService(apiClient, runRepository, combinedRuleService)
	batchService := service.NewBatchService(apiClient, validationService)
	summaryService := service.NewSummaryService(summaryRepository)

	healthController := controller.NewHealthController(readyChan)
	schemaController := controller.NewSchemaController(schemaService)
	tableController := controller.NewTableController(tableService)
	validationController := controller.NewValidationController(validationService, batchService)
	runController := controller.NewRunController(validationService)
	combinedRuleController := controller.NewCombinedRuleController(combinedRuleService)
	summaryController := controller.NewSummaryController(summaryService)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/schema/rawResults", security.Secure(schemaController.GetRawResultsSchema)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/table", security.Secure(tableController.BuildTable)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/validations", security.Secure(validationController.RunValidation)).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/batches", security.Secure(validationController.RunBatch)).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/runs", security.Secure(runController.ListRuns)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/runs/{runId}", security.Secure(runController.GetRun)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/runs/{runId}/table", security.Secure(runController.GetRunTable)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/runs/{runId}/combinedRules", security.Secure(runController.GetRunCombinedRules)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/combinedRules", security.Secure(combinedRuleController.ListCombinedRules)).Methods(http.MethodGet)

	router.HandleFunc("/api/v1/summary/passRates", security.Secure(summaryController.GetPassRates)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/summary/ruleFailures", security.Secure(summaryController.GetRuleFailures)).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/summary/trends", security.Secure(summaryController.GetRegionalTrends)).Methods(http.MethodGet)

	router.HandleFunc("/live", security.NoSecure(healthController.HandleLiveRequest)).Methods(http.MethodGet)
	router.HandleFunc("/ready", security.NoSecure(healthController.HandleReadyRequest)).Methods(http.MethodGet)

	utils.SafeAsync(func() {
		defer close(readyChan)
		if cp != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := db.Ping(ctx, cp); err != nil {
				log.Errorf("Database is not reachable: %v", err)
				return
			}
			if err := db.InitSchema(ctx, cp); err != nil {
				log.Errorf("Failed to init db schema: %v", err)
				return
			}
		}
		readyChan <- true
	})

	debug.SetGCPercent(30)

	srv := makeServer(systemInfoService, router)
	log.Fatalf("%v", srv.ListenAndServe())
}

func makeServer(systemInfoService service.SystemInfoService, r *mux.Router) *http.Server {
	listenAddr := systemInfoService.GetListenAddress()

	log.Infof("Listen addr = %s", listenAddr)

	var corsOptions []handlers.CORSOption

	corsOptions = append(corsOptions, handlers.AllowedHeaders([]string{"Connection", "Accept-Encoding", "Content-Encoding", "X-Requested-With", "Content-Type", "Authorization", security.ApiKeyHeader}))

	allowedOrigin := systemInfoService.GetOriginAllowed()
	if allowedOrigin != "" {
		corsOptions = append(corsOptions, handlers.AllowedOrigins([]string{allowedOrigin}))
	}
	corsOptions = append(corsOptions, handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}))

	return &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         listenAddr,
		WriteTimeout: 600 * time.Second,
		ReadTimeout:  60 * time.Second,
	}
}
