package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /ping)
	GetPing(c *gin.Context)
	// (POST /auth/login)
	Login(c *gin.Context)
	// (POST /auth/register)
	Register(c *gin.Context)
	// (POST /auth/refresh)
	RefreshToken(c *gin.Context)
	// (POST /auth/logout)
	Logout(c *gin.Context)
	// (GET /profile)
	GetProfile(c *gin.Context)
	// (GET /records)
	GetRecords(c *gin.Context, params GetRecordsParams)
	// (POST /records)
	CreateRecord(c *gin.Context)
	// (PUT /records/{id})
	UpdateRecord(c *gin.Context, id string)
	// (POST /records/{id}/delete)
	RequestDelete(c *gin.Context, id string)
	// (POST /confirmation/confirm)
	ConfirmPending(c *gin.Context)
	// (POST /confirmation/cancel)
	CancelPending(c *gin.Context)
	// (GET /stats)
	GetStats(c *gin.Context)
	// (POST /import/csv)
	ImportCSV(c *gin.Context)
	// (POST /import/json)
	ImportJSON(c *gin.Context)
	// (POST /import/backup)
	ImportBackup(c *gin.Context)
	// (GET /export/csv)
	ExportCSV(c *gin.Context)
	// (GET /export/json)
	ExportJSON(c *gin.Context, params ExportJSONParams)
	// (GET /backup)
	GetBackup(c *gin.Context)
	// (GET /backup/archive)
	ListArchivedBackups(c *gin.Context)
	// (POST /backup/archive)
	ArchiveBackup(c *gin.Context)
	// (POST /backup/restore)
	RestoreBackup(c *gin.Context)
	// (GET /templates/{format})
	GetTemplate(c *gin.Context, format GetTemplateParamsFormat)
	// (GET /notifications)
	GetNotifications(c *gin.Context)
	// (GET /notifications/stream)
	StreamNotifications(c *gin.Context)
	// (GET /preferences/theme)
	GetTheme(c *gin.Context)
	// (PUT /preferences/theme)
	PutTheme(c *gin.Context)
	// (POST /preferences/theme/toggle)
	ToggleTheme(c *gin.Context)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandler       func(*gin.Context, error, int)
}

type MiddlewareFunc func(c *gin.Context)

func (siw *ServerInterfaceWrapper) handle(c *gin.Context, h func(c *gin.Context)) {
	for _, middleware := range siw.HandlerMiddlewares {
		middleware(c)
		if c.IsAborted() {
			return
		}
	}
	h(c)
}

func (siw *ServerInterfaceWrapper) pathParam(c *gin.Context, name string) (string, bool) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value, runtime.BindStyledParameterOptions{Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter %s: %w", name, err), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

func (siw *ServerInterfaceWrapper) GetRecords(c *gin.Context) {
	var params GetRecordsParams
	query := c.Request.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "filter", query, &params.Filter); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter filter: %w", err), http.StatusBadRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "sort", query, &params.Sort); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter sort: %w", err), http.StatusBadRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "search", query, &params.Search); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter search: %w", err), http.StatusBadRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "layout", query, &params.Layout); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter layout: %w", err), http.StatusBadRequest)
		return
	}

	siw.handle(c, func(c *gin.Context) { siw.Handler.GetRecords(c, params) })
}

func (siw *ServerInterfaceWrapper) UpdateRecord(c *gin.Context) {
	id, ok := siw.pathParam(c, "id")
	if !ok {
		return
	}
	siw.handle(c, func(c *gin.Context) { siw.Handler.UpdateRecord(c, id) })
}

func (siw *ServerInterfaceWrapper) RequestDelete(c *gin.Context) {
	id, ok := siw.pathParam(c, "id")
	if !ok {
		return
	}
	siw.handle(c, func(c *gin.Context) { siw.Handler.RequestDelete(c, id) })
}

func (siw *ServerInterfaceWrapper) ExportJSON(c *gin.Context) {
	var params ExportJSONParams
	if err := runtime.BindQueryParameter("form", true, false, "filtered", c.Request.URL.Query(), &params.Filtered); err != nil {
		siw.ErrorHandler(c, fmt.Errorf("Invalid format for parameter filtered: %w", err), http.StatusBadRequest)
		return
	}
	siw.handle(c, func(c *gin.Context) { siw.Handler.ExportJSON(c, params) })
}

func (siw *ServerInterfaceWrapper) GetTemplate(c *gin.Context) {
	format, ok := siw.pathParam(c, "format")
	if !ok {
		return
	}
	siw.handle(c, func(c *gin.Context) { siw.Handler.GetTemplate(c, GetTemplateParamsFormat(format)) })
}

// GinServerOptions provides options for the Gin server.
type GinServerOptions struct {
	BaseURL      string
	Middlewares  []MiddlewareFunc
	ErrorHandler func(*gin.Context, error, int)
}

// RegisterHandlers creates http.Handler with routing matching OpenAPI spec.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	RegisterHandlersWithOptions(router, si, GinServerOptions{})
}

// RegisterHandlersWithOptions creates http.Handler with additional options
func RegisterHandlersWithOptions(router gin.IRouter, si ServerInterface, options GinServerOptions) {
	errorHandler := options.ErrorHandler
	if errorHandler == nil {
		errorHandler = func(c *gin.Context, err error, statusCode int) {
			c.JSON(statusCode, gin.H{"error": err.Error()})
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandler:       errorHandler,
	}
	plain := func(h func(c *gin.Context)) gin.HandlerFunc {
		return func(c *gin.Context) { wrapper.handle(c, h) }
	}

	base := options.BaseURL
	router.GET(base+"/ping", plain(si.GetPing))
	router.POST(base+"/auth/login", plain(si.Login))
	router.POST(base+"/auth/register", plain(si.Register))
	router.POST(base+"/auth/refresh", plain(si.RefreshToken))
	router.POST(base+"/auth/logout", plain(si.Logout))
	router.GET(base+"/profile", plain(si.GetProfile))
	router.GET(base+"/records", wrapper.GetRecords)
	router.POST(base+"/records", plain(si.CreateRecord))
	router.PUT(base+"/records/:id", wrapper.UpdateRecord)
	router.POST(base+"/records/:id/delete", wrapper.RequestDelete)
	router.POST(base+"/confirmation/confirm", plain(si.ConfirmPending))
	router.POST(base+"/confirmation/cancel", plain(si.CancelPending))
	router.GET(base+"/stats", plain(si.GetStats))
	router.POST(base+"/import/csv", plain(si.ImportCSV))
	router.POST(base+"/import/json", plain(si.ImportJSON))
	router.POST(base+"/import/backup", plain(si.ImportBackup))
	router.GET(base+"/export/csv", plain(si.ExportCSV))
	router.GET(base+"/export/json", wrapper.ExportJSON)
	router.GET(base+"/backup", plain(si.GetBackup))
	router.GET(base+"/backup/archive", plain(si.ListArchivedBackups))
	router.POST(base+"/backup/archive", plain(si.ArchiveBackup))
	router.POST(base+"/backup/restore", plain(si.RestoreBackup))
	router.GET(base+"/templates/:format", wrapper.GetTemplate)
	router.GET(base+"/notifications", plain(si.GetNotifications))
	router.GET(base+"/notifications/stream", plain(si.StreamNotifications))
	router.GET(base+"/preferences/theme", plain(si.GetTheme))
	router.PUT(base+"/preferences/theme", plain(si.PutTheme))
	router.POST(base+"/preferences/theme/toggle", plain(si.ToggleTheme))
}
