package envvars

import (
	"log"
	"os"
)

const (
	ProjectID      = "GCP_PROJECT_ID"
	FirebaseAPIKey = "FIREBASE_API_KEY"
	Environment    = "ENVIRONMENT"
	Port           = "PORT"
	AccountDomain  = "ACCOUNT_DOMAIN"
	IdentityURL    = "IDENTITY_BASE_URL"
	TokenURL       = "TOKEN_BASE_URL"
	BackupBucket   = "BACKUP_BUCKET"
	SortLocale     = "SORT_LOCALE"
)

const (
	ProductionEnv = "production"
	DevEnv        = "dev"
)

type Env struct {
	ProjectID      string
	FirebaseAPIKey string
	Environment    string
	Port           string
	AccountDomain  string
	IdentityURL    string
	TokenURL       string
	BackupBucket   string
	SortLocale     string
}

func GetEvn() Env {
	projectID, ok := os.LookupEnv(ProjectID)
	if !ok {
		log.Fatalf("%s required", ProjectID)
	}
	apiKey, ok := os.LookupEnv(FirebaseAPIKey)
	if !ok {
		log.Fatalf("%s required", FirebaseAPIKey)
	}
	return Env{
		ProjectID:      projectID,
		FirebaseAPIKey: apiKey,
		Environment:    lookup(Environment, DevEnv),
		Port:           lookup(Port, "8080"),
		AccountDomain:  lookup(AccountDomain, "acadport.app"),
		IdentityURL:    lookup(IdentityURL, ""),
		TokenURL:       lookup(TokenURL, ""),
		BackupBucket:   lookup(BackupBucket, ""),
		SortLocale:     lookup(SortLocale, "en"),
	}
}

func lookup(key string, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	return v
}

func IsProd(env Env) bool {
	return env.Environment == ProductionEnv
}

func IsDev(env Env) bool {
	return env.Environment == DevEnv
}
