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

package service

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Netcracker/qubership-validation-dashboard/db"
	"github.com/Netcracker/qubership-validation-dashboard/utils"
	log "github.com/sirupsen/logrus"
)

const (
	LISTEN_ADDRESS             = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED             = "ORIGIN_ALLOWED"
	LOG_LEVEL                  = "LOG_LEVEL"
	VALIDATION_API_URL         = "VALIDATION_API_URL"
	VALIDATION_API_KEY         = "VALIDATION_API_KEY"
	VALIDATION_API_TIMEOUT_SEC = "VALIDATION_API_TIMEOUT_SEC"
	DB_HOST                    = "DB_HOST"
	DB_PORT                    = "DB_PORT"
	DB_NAME                    = "DB_NAME"
	DB_USER                    = "DB_USER"
	DB_PASSWORD                = "DB_PASSWORD"
	DB_SSL_MODE                = "DB_SSL_MODE"
	API_KEYS                   = "API_KEYS"
	COMBINED_RULES_PATH        = "COMBINED_RULES_PATH"
)

type SystemInfoService interface {
	Init() error
	GetListenAddress() string
	GetOriginAllowed() string
	GetLogLevel() string
	GetValidationApiUrl() string
	GetValidationApiKey() string
	GetValidationApiTimeout() time.Duration
	IsPersistenceEnabled() bool
	GetCredsFromEnv() db.DbCredentials
	GetApiKeys() []string
	GetCombinedRulesPath() string
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) Init() error {
	g.setListenAddress()
	g.setOriginAllowed()
	g.setLogLevel()
	if err := g.setValidationApiUrl(); err != nil {
		return err
	}
	g.setValidationApiKey()
	if err := g.setValidationApiTimeout(); err != nil {
		return err
	}
	if err := g.setDbCreds(); err != nil {
		return err
	}
	g.setApiKeys()
	g.setCombinedRulesPath()

	return nil
}

func (g systemInfoServiceImpl) setListenAddress() {
	listenAddr := os.Getenv(LISTEN_ADDRESS)
	if listenAddr == "" {
		listenAddr = ":8080"
	}
	g.systemInfoMap[LISTEN_ADDRESS] = listenAddr
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.systemInfoMap[LISTEN_ADDRESS].(string)
}

func (g systemInfoServiceImpl) setOriginAllowed() {
	g.systemInfoMap[ORIGIN_ALLOWED] = os.Getenv(ORIGIN_ALLOWED)
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.systemInfoMap[ORIGIN_ALLOWED].(string)
}

func (g systemInfoServiceImpl) setLogLevel() {
	g.systemInfoMap[LOG_LEVEL] = os.Getenv(LOG_LEVEL)
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.systemInfoMap[LOG_LEVEL].(string)
}

func (g systemInfoServiceImpl) setValidationApiUrl() error {
	apiUrl := os.Getenv(VALIDATION_API_URL)
	if apiUrl == "" {
		return fmt.Errorf("env %s is not set", VALIDATION_API_URL)
	}
	g.systemInfoMap[VALIDATION_API_URL] = apiUrl
	return nil
}

func (g systemInfoServiceImpl) GetValidationApiUrl() string {
	return g.systemInfoMap[VALIDATION_API_URL].(string)
}

func (g systemInfoServiceImpl) setValidationApiKey() {
	g.systemInfoMap[VALIDATION_API_KEY] = os.Getenv(VALIDATION_API_KEY)
}

func (g systemInfoServiceImpl) GetValidationApiKey() string {
	return g.systemInfoMap[VALIDATION_API_KEY].(string)
}

func (g systemInfoServiceImpl) setValidationApiTimeout() error {
	timeoutSec := 60
	if str := os.Getenv(VALIDATION_API_TIMEOUT_SEC); str != "" {
		val, err := strconv.Atoi(str)
		if err != nil || val <= 0 {
			return fmt.Errorf("env %s has invalid value '%s'", VALIDATION_API_TIMEOUT_SEC, str)
		}
		timeoutSec = val
	}
	g.systemInfoMap[VALIDATION_API_TIMEOUT_SEC] = time.Duration(timeoutSec) * time.Second
	return nil
}

func (g systemInfoServiceImpl) GetValidationApiTimeout() time.Duration {
	return g.systemInfoMap[VALIDATION_API_TIMEOUT_SEC].(time.Duration)
}

func (g systemInfoServiceImpl) setDbCreds() error {
	port := 5432
	if str := os.Getenv(DB_PORT); str != "" {
		val, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("env %s has invalid value '%s'", DB_PORT, str)
		}
		port = val
	}
	database := os.Getenv(DB_NAME)
	if database == "" {
		database = "validation_dashboard"
	}
	sslMode := os.Getenv(DB_SSL_MODE)
	if sslMode == "" {
		sslMode = "disable"
	}
	g.systemInfoMap[DB_HOST] = os.Getenv(DB_HOST)
	g.systemInfoMap[DB_PORT] = port
	g.systemInfoMap[DB_NAME] = database
	g.systemInfoMap[DB_USER] = os.Getenv(DB_USER)
	g.systemInfoMap[DB_PASSWORD] = os.Getenv(DB_PASSWORD)
	g.systemInfoMap[DB_SSL_MODE] = sslMode
	return nil
}

func (g systemInfoServiceImpl) IsPersistenceEnabled() bool {
	return g.systemInfoMap[DB_HOST].(string) != ""
}

func (g systemInfoServiceImpl) GetCredsFromEnv() db.DbCredentials {
	return db.DbCredentials{
		Host:     g.systemInfoMap[DB_HOST].(string),
		Port:     g.systemInfoMap[DB_PORT].(int),
		Database: g.systemInfoMap[DB_NAME].(string),
		Username: g.systemInfoMap[DB_USER].(string),
		Password: g.systemInfoMap[DB_PASSWORD].(string),
		SSLMode:  g.systemInfoMap[DB_SSL_MODE].(string),
	}
}

func (g systemInfoServiceImpl) setApiKeys() {
	g.systemInfoMap[API_KEYS] = utils.SplitCSV(os.Getenv(API_KEYS))
}

func (g systemInfoServiceImpl) GetApiKeys() []string {
	return g.systemInfoMap[API_KEYS].([]string)
}

func (g systemInfoServiceImpl) setCombinedRulesPath() {
	g.systemInfoMap[COMBINED_RULES_PATH] = os.Getenv(COMBINED_RULES_PATH)
}

func (g systemInfoServiceImpl) GetCombinedRulesPath() string {
	return g.systemInfoMap[COMBINED_RULES_PATH].(string)
}
