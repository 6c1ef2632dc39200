package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"acadport/api"
	"acadport/clients/gcp"
	"acadport/clients/identity"
	"acadport/clients/storage"
	"acadport/envvars"
	"acadport/services/projection"
	"acadport/services/record"
	"acadport/services/session"
	"acadport/services/user"
	"acadport/validator"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/oapi-codegen/gin-middleware"
	"golang.org/x/text/language"
)

func main() {
	env := envvars.GetEvn()
	if envvars.IsDev(env) {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	firestore := gcp.CreateFirestore(ctx, env.ProjectID)
	defer firestore.Close()

	var archive storage.Archive
	if storageClient := gcp.CreateStorage(ctx, env.BackupBucket); storageClient != nil {
		defer storageClient.Close()
		archive = storage.NewBucketArchive(storageClient, env.BackupBucket)
	}

	tag, err := language.Parse(env.SortLocale)
	if err != nil {
		slog.Warn("unknown sort locale, using English", "locale", env.SortLocale)
		tag = language.English
	}
	sessions := session.NewManager(ctx, record.NewService(firestore), session.Options{
		Projector: projection.NewProjector(tag),
	})
	defer sessions.CloseAll()

	identityClient := identity.NewClient(resty.New().SetTimeout(30*time.Second), identity.Config{
		APIKey:      env.FirebaseAPIKey,
		Domain:      env.AccountDomain,
		IdentityURL: env.IdentityURL,
		TokenURL:    env.TokenURL,
	})
	server := NewServer(identityClient, sessions, user.NewUserService(firestore), archive)

	// Load OpenAPI spec file
	swagger, err := api.GetSwagger()
	if err != nil {
		slog.With("error", err.Error()).Error("failed to load swagger spec file")
		return
	}
	// Clear out the servers array in the swagger spec, that skips validating
	// that server names match. We don't know how this thing will be run.
	swagger.Servers = nil

	if envvars.IsProd(env) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.ContextWithFallback = true
	r.Use(cors.Default())

	r.GET("/openapi", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/x-yaml", api.RawSpec())
	})

	registerAPI(r, swagger, validator.NewAuthenticator(validator.NewVerifier(ctx, env.ProjectID, "")), server)

	s := &http.Server{
		Handler: r,
		Addr:    "0.0.0.0:" + env.Port,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			slog.With("error", err.Error()).Error("failed to shut down HTTP server")
		}
	}()

	slog.Info("Starting HTTP server", "port", env.Port)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// registerAPI mounts the request validator and the handlers of server on r.
func registerAPI(r *gin.Engine, swagger *openapi3.T, authenticate openapi3filter.AuthenticationFunc, server Server) {
	r.Use(ginmiddleware.OapiRequestValidatorWithOptions(swagger, &ginmiddleware.Options{
		ErrorHandler: func(c *gin.Context, message string, statusCode int) {
			if strings.Contains(message, "SecurityRequirementsError") {
				statusCode = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(statusCode, api.Error{Error: message})
		},
		Options: openapi3filter.Options{AuthenticationFunc: authenticate},
	}))
	h := api.NewStrictHandler(server, []api.StrictMiddlewareFunc{RespondErrors})
	api.RegisterHandlers(r, h)
}
