package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	strictgin "github.com/oapi-codegen/runtime/strictmiddleware/gin"
)

type LoginJSONRequestBody = LoginRequest
type RegisterJSONRequestBody = RegisterRequest
type RefreshTokenJSONRequestBody = RefreshRequest
type CreateRecordJSONRequestBody = RecordInput
type UpdateRecordJSONRequestBody = RecordInput
type RestoreBackupJSONRequestBody = RestoreRequest
type PutThemeJSONRequestBody = ThemePreference

// GetTemplateParamsFormat defines parameters for GetTemplate.
type GetTemplateParamsFormat string

const (
	GetTemplateParamsFormatCsv  GetTemplateParamsFormat = "csv"
	GetTemplateParamsFormatJson GetTemplateParamsFormat = "json"
)

type ErrorJSONResponse Error

type MessageJSONResponse Message

type AuthJSONResponse AuthResponse

type ImportJSONResponse ImportResult

type ThemeJSONResponse ThemePreference

type AttachmentResponseHeaders struct {
	ContentDisposition string
}

// AttachmentResponse is a file download.
type AttachmentResponse struct {
	Body          io.Reader
	Headers       AttachmentResponseHeaders
	ContentType   string
	ContentLength int64
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (response AttachmentResponse) write(w http.ResponseWriter, status int) error {
	w.Header().Set("Content-Type", response.ContentType)
	if response.ContentLength != 0 {
		w.Header().Set("Content-Length", fmt.Sprint(response.ContentLength))
	}
	w.Header().Set("Content-Disposition", response.Headers.ContentDisposition)
	w.WriteHeader(status)

	if closer, ok := response.Body.(io.ReadCloser); ok {
		defer closer.Close()
	}
	_, err := io.Copy(w, response.Body)
	return err
}

type GetPingRequestObject struct {
}

type GetPingResponseObject interface {
	VisitGetPingResponse(w http.ResponseWriter) error
}

type GetPing200JSONResponse Pong

func (response GetPing200JSONResponse) VisitGetPingResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type LoginRequestObject struct {
	Body *LoginJSONRequestBody
}

type LoginResponseObject interface {
	VisitLoginResponse(w http.ResponseWriter) error
}

type Login200JSONResponse struct{ AuthJSONResponse }

func (response Login200JSONResponse) VisitLoginResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type Login401JSONResponse struct{ ErrorJSONResponse }

func (response Login401JSONResponse) VisitLoginResponse(w http.ResponseWriter) error {
	return writeJSON(w, 401, response)
}

type RegisterRequestObject struct {
	Body *RegisterJSONRequestBody
}

type RegisterResponseObject interface {
	VisitRegisterResponse(w http.ResponseWriter) error
}

type Register201JSONResponse struct{ AuthJSONResponse }

func (response Register201JSONResponse) VisitRegisterResponse(w http.ResponseWriter) error {
	return writeJSON(w, 201, response)
}

type RefreshTokenRequestObject struct {
	Body *RefreshTokenJSONRequestBody
}

type RefreshTokenResponseObject interface {
	VisitRefreshTokenResponse(w http.ResponseWriter) error
}

type RefreshToken200JSONResponse struct{ AuthJSONResponse }

func (response RefreshToken200JSONResponse) VisitRefreshTokenResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type LogoutRequestObject struct {
}

type LogoutResponseObject interface {
	VisitLogoutResponse(w http.ResponseWriter) error
}

type Logout200JSONResponse struct{ MessageJSONResponse }

func (response Logout200JSONResponse) VisitLogoutResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type GetProfileRequestObject struct {
}

type GetProfileResponseObject interface {
	VisitGetProfileResponse(w http.ResponseWriter) error
}

type GetProfile200JSONResponse Profile

func (response GetProfile200JSONResponse) VisitGetProfileResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type GetRecordsRequestObject struct {
	Params GetRecordsParams
}

type GetRecordsResponseObject interface {
	VisitGetRecordsResponse(w http.ResponseWriter) error
}

type GetRecords200JSONResponse Dashboard

func (response GetRecords200JSONResponse) VisitGetRecordsResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type CreateRecordRequestObject struct {
	Body *CreateRecordJSONRequestBody
}

type CreateRecordResponseObject interface {
	VisitCreateRecordResponse(w http.ResponseWriter) error
}

type CreateRecord202JSONResponse struct{ MessageJSONResponse }

func (response CreateRecord202JSONResponse) VisitCreateRecordResponse(w http.ResponseWriter) error {
	return writeJSON(w, 202, response)
}

type UpdateRecordRequestObject struct {
	Id   string `json:"id"`
	Body *UpdateRecordJSONRequestBody
}

type UpdateRecordResponseObject interface {
	VisitUpdateRecordResponse(w http.ResponseWriter) error
}

type UpdateRecord202JSONResponse struct{ MessageJSONResponse }

func (response UpdateRecord202JSONResponse) VisitUpdateRecordResponse(w http.ResponseWriter) error {
	return writeJSON(w, 202, response)
}

type RequestDeleteRequestObject struct {
	Id string `json:"id"`
}

type RequestDeleteResponseObject interface {
	VisitRequestDeleteResponse(w http.ResponseWriter) error
}

type RequestDelete202JSONResponse PendingConfirmation

func (response RequestDelete202JSONResponse) VisitRequestDeleteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 202, response)
}

type ConfirmPendingRequestObject struct {
}

type ConfirmPendingResponseObject interface {
	VisitConfirmPendingResponse(w http.ResponseWriter) error
}

type ConfirmPending200JSONResponse struct{ MessageJSONResponse }

func (response ConfirmPending200JSONResponse) VisitConfirmPendingResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type CancelPendingRequestObject struct {
}

type CancelPendingResponseObject interface {
	VisitCancelPendingResponse(w http.ResponseWriter) error
}

type CancelPending200JSONResponse struct{ MessageJSONResponse }

func (response CancelPending200JSONResponse) VisitCancelPendingResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type GetStatsRequestObject struct {
}

type GetStatsResponseObject interface {
	VisitGetStatsResponse(w http.ResponseWriter) error
}

type GetStats200JSONResponse Stats

func (response GetStats200JSONResponse) VisitGetStatsResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

// ImportCSVRequestObject carries the raw upload; text bodies are streamed so the
// handler can bound their size.
type ImportCSVRequestObject struct {
	Body io.Reader
}

type ImportCSVResponseObject interface {
	VisitImportCSVResponse(w http.ResponseWriter) error
}

type ImportCSV200JSONResponse struct{ ImportJSONResponse }

func (response ImportCSV200JSONResponse) VisitImportCSVResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type ImportCSV502JSONResponse struct{ ImportJSONResponse }

func (response ImportCSV502JSONResponse) VisitImportCSVResponse(w http.ResponseWriter) error {
	return writeJSON(w, 502, response)
}

type ImportJSONRequestObject struct {
	Body io.Reader
}

type ImportJSONResponseObject interface {
	VisitImportJSONResponse(w http.ResponseWriter) error
}

type ImportJSON200JSONResponse struct{ ImportJSONResponse }

func (response ImportJSON200JSONResponse) VisitImportJSONResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type ImportJSON502JSONResponse struct{ ImportJSONResponse }

func (response ImportJSON502JSONResponse) VisitImportJSONResponse(w http.ResponseWriter) error {
	return writeJSON(w, 502, response)
}

type ImportBackupRequestObject struct {
	Body io.Reader
}

type ImportBackupResponseObject interface {
	VisitImportBackupResponse(w http.ResponseWriter) error
}

type ImportBackup200JSONResponse struct{ ImportJSONResponse }

func (response ImportBackup200JSONResponse) VisitImportBackupResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type ImportBackup502JSONResponse struct{ ImportJSONResponse }

func (response ImportBackup502JSONResponse) VisitImportBackupResponse(w http.ResponseWriter) error {
	return writeJSON(w, 502, response)
}

type ExportCSVRequestObject struct {
}

type ExportCSVResponseObject interface {
	VisitExportCSVResponse(w http.ResponseWriter) error
}

type ExportCSV200Response struct{ AttachmentResponse }

func (response ExportCSV200Response) VisitExportCSVResponse(w http.ResponseWriter) error {
	return response.write(w, 200)
}

type ExportJSONRequestObject struct {
	Params ExportJSONParams
}

type ExportJSONResponseObject interface {
	VisitExportJSONResponse(w http.ResponseWriter) error
}

type ExportJSON200Response struct{ AttachmentResponse }

func (response ExportJSON200Response) VisitExportJSONResponse(w http.ResponseWriter) error {
	return response.write(w, 200)
}

type GetBackupRequestObject struct {
}

type GetBackupResponseObject interface {
	VisitGetBackupResponse(w http.ResponseWriter) error
}

type GetBackup200Response struct{ AttachmentResponse }

func (response GetBackup200Response) VisitGetBackupResponse(w http.ResponseWriter) error {
	return response.write(w, 200)
}

type ListArchivedBackupsRequestObject struct {
}

type ListArchivedBackupsResponseObject interface {
	VisitListArchivedBackupsResponse(w http.ResponseWriter) error
}

type ListArchivedBackups200JSONResponse []ArchivedBackup

func (response ListArchivedBackups200JSONResponse) VisitListArchivedBackupsResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type ArchiveBackupRequestObject struct {
}

type ArchiveBackupResponseObject interface {
	VisitArchiveBackupResponse(w http.ResponseWriter) error
}

type ArchiveBackup201JSONResponse ArchivedBackup

func (response ArchiveBackup201JSONResponse) VisitArchiveBackupResponse(w http.ResponseWriter) error {
	return writeJSON(w, 201, response)
}

type RestoreBackupRequestObject struct {
	Body *RestoreBackupJSONRequestBody
}

type RestoreBackupResponseObject interface {
	VisitRestoreBackupResponse(w http.ResponseWriter) error
}

type RestoreBackup200JSONResponse struct{ ImportJSONResponse }

func (response RestoreBackup200JSONResponse) VisitRestoreBackupResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type RestoreBackup502JSONResponse struct{ ImportJSONResponse }

func (response RestoreBackup502JSONResponse) VisitRestoreBackupResponse(w http.ResponseWriter) error {
	return writeJSON(w, 502, response)
}

type GetTemplateRequestObject struct {
	Format GetTemplateParamsFormat `json:"format"`
}

type GetTemplateResponseObject interface {
	VisitGetTemplateResponse(w http.ResponseWriter) error
}

type GetTemplate200Response struct{ AttachmentResponse }

func (response GetTemplate200Response) VisitGetTemplateResponse(w http.ResponseWriter) error {
	return response.write(w, 200)
}

type GetNotificationsRequestObject struct {
}

type GetNotificationsResponseObject interface {
	VisitGetNotificationsResponse(w http.ResponseWriter) error
}

type GetNotifications200JSONResponse []Notification

func (response GetNotifications200JSONResponse) VisitGetNotificationsResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type StreamNotificationsRequestObject struct {
}

type StreamNotificationsResponseObject interface {
	VisitStreamNotificationsResponse(w http.ResponseWriter) error
}

type StreamNotifications200TexteventStreamResponse struct {
	Body          io.Reader
	ContentLength int64
}

func (response StreamNotifications200TexteventStreamResponse) VisitStreamNotificationsResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	if response.ContentLength != 0 {
		w.Header().Set("Content-Length", fmt.Sprint(response.ContentLength))
	}
	w.WriteHeader(200)

	if closer, ok := response.Body.(io.ReadCloser); ok {
		defer closer.Close()
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		// If w doesn't support flushing, might as well use io.Copy
		_, err := io.Copy(w, response.Body)
		return err
	}

	// Use a buffer for efficient copying and flushing
	buf := make([]byte, 4096)
	for {
		n, err := response.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return err
			}
			flusher.Flush()
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

type GetThemeRequestObject struct {
}

type GetThemeResponseObject interface {
	VisitGetThemeResponse(w http.ResponseWriter) error
}

type GetTheme200JSONResponse struct{ ThemeJSONResponse }

func (response GetTheme200JSONResponse) VisitGetThemeResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type PutThemeRequestObject struct {
	Body *PutThemeJSONRequestBody
}

type PutThemeResponseObject interface {
	VisitPutThemeResponse(w http.ResponseWriter) error
}

type PutTheme200JSONResponse struct{ ThemeJSONResponse }

func (response PutTheme200JSONResponse) VisitPutThemeResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type ToggleThemeRequestObject struct {
}

type ToggleThemeResponseObject interface {
	VisitToggleThemeResponse(w http.ResponseWriter) error
}

type ToggleTheme200JSONResponse struct{ ThemeJSONResponse }

func (response ToggleTheme200JSONResponse) VisitToggleThemeResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

// StrictServerInterface represents all server handlers.
type StrictServerInterface interface {
	// (GET /ping)
	GetPing(ctx context.Context, request GetPingRequestObject) (GetPingResponseObject, error)
	// (POST /auth/login)
	Login(ctx context.Context, request LoginRequestObject) (LoginResponseObject, error)
	// (POST /auth/register)
	Register(ctx context.Context, request RegisterRequestObject) (RegisterResponseObject, error)
	// (POST /auth/refresh)
	RefreshToken(ctx context.Context, request RefreshTokenRequestObject) (RefreshTokenResponseObject, error)
	// (POST /auth/logout)
	Logout(ctx context.Context, request LogoutRequestObject) (LogoutResponseObject, error)
	// (GET /profile)
	GetProfile(ctx context.Context, request GetProfileRequestObject) (GetProfileResponseObject, error)
	// (GET /records)
	GetRecords(ctx context.Context, request GetRecordsRequestObject) (GetRecordsResponseObject, error)
	// (POST /records)
	CreateRecord(ctx context.Context, request CreateRecordRequestObject) (CreateRecordResponseObject, error)
	// (PUT /records/{id})
	UpdateRecord(ctx context.Context, request UpdateRecordRequestObject) (UpdateRecordResponseObject, error)
	// (POST /records/{id}/delete)
	RequestDelete(ctx context.Context, request RequestDeleteRequestObject) (RequestDeleteResponseObject, error)
	// (POST /confirmation/confirm)
	ConfirmPending(ctx context.Context, request ConfirmPendingRequestObject) (ConfirmPendingResponseObject, error)
	// (POST /confirmation/cancel)
	CancelPending(ctx context.Context, request CancelPendingRequestObject) (CancelPendingResponseObject, error)
	// (GET /stats)
	GetStats(ctx context.Context, request GetStatsRequestObject) (GetStatsResponseObject, error)
	// (POST /import/csv)
	ImportCSV(ctx context.Context, request ImportCSVRequestObject) (ImportCSVResponseObject, error)
	// (POST /import/json)
	ImportJSON(ctx context.Context, request ImportJSONRequestObject) (ImportJSONResponseObject, error)
	// (POST /import/backup)
	ImportBackup(ctx context.Context, request ImportBackupRequestObject) (ImportBackupResponseObject, error)
	// (GET /export/csv)
	ExportCSV(ctx context.Context, request ExportCSVRequestObject) (ExportCSVResponseObject, error)
	// (GET /export/json)
	ExportJSON(ctx context.Context, request ExportJSONRequestObject) (ExportJSONResponseObject, error)
	// (GET /backup)
	GetBackup(ctx context.Context, request GetBackupRequestObject) (GetBackupResponseObject, error)
	// (GET /backup/archive)
	ListArchivedBackups(ctx context.Context, request ListArchivedBackupsRequestObject) (ListArchivedBackupsResponseObject, error)
	// (POST /backup/archive)
	ArchiveBackup(ctx context.Context, request ArchiveBackupRequestObject) (ArchiveBackupResponseObject, error)
	// (POST /backup/restore)
	RestoreBackup(ctx context.Context, request RestoreBackupRequestObject) (RestoreBackupResponseObject, error)
	// (GET /templates/{format})
	GetTemplate(ctx context.Context, request GetTemplateRequestObject) (GetTemplateResponseObject, error)
	// (GET /notifications)
	GetNotifications(ctx context.Context, request GetNotificationsRequestObject) (GetNotificationsResponseObject, error)
	// (GET /notifications/stream)
	StreamNotifications(ctx context.Context, request StreamNotificationsRequestObject) (StreamNotificationsResponseObject, error)
	// (GET /preferences/theme)
	GetTheme(ctx context.Context, request GetThemeRequestObject) (GetThemeResponseObject, error)
	// (PUT /preferences/theme)
	PutTheme(ctx context.Context, request PutThemeRequestObject) (PutThemeResponseObject, error)
	// (POST /preferences/theme/toggle)
	ToggleTheme(ctx context.Context, request ToggleThemeRequestObject) (ToggleThemeResponseObject, error)
}

type StrictHandlerFunc = strictgin.StrictGinHandlerFunc
type StrictMiddlewareFunc = strictgin.StrictGinMiddlewareFunc

func NewStrictHandler(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares}
}

type strictHandler struct {
	ssi         StrictServerInterface
	middlewares []StrictMiddlewareFunc
}

// serve runs handler through the middlewares and writes its response. visit
// reports false when the response does not belong to the operation.
func (sh *strictHandler) serve(ctx *gin.Context, operationID string, request interface{}, handler StrictHandlerFunc, visit func(response interface{}) (bool, error)) {
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, operationID)
	}

	response, err := handler(ctx, request)
	if err != nil {
		ctx.Error(err)
		ctx.Status(http.StatusInternalServerError)
		return
	}
	if response == nil {
		return
	}
	ok, err := visit(response)
	if !ok {
		ctx.Error(fmt.Errorf("unexpected response type: %T", response))
		return
	}
	if err != nil {
		ctx.Error(err)
	}
}

func bindJSON[T any](ctx *gin.Context) (*T, bool) {
	var body T
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, Error{Error: err.Error()})
		return nil, false
	}
	return &body, true
}

// GetPing operation middleware
func (sh *strictHandler) GetPing(ctx *gin.Context) {
	var request GetPingRequestObject
	sh.serve(ctx, "GetPing", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetPing(ctx, request.(GetPingRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetPingResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetPingResponse(ctx.Writer)
	})
}

// Login operation middleware
func (sh *strictHandler) Login(ctx *gin.Context) {
	var request LoginRequestObject
	body, ok := bindJSON[LoginJSONRequestBody](ctx)
	if !ok {
		return
	}
	request.Body = body
	sh.serve(ctx, "Login", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.Login(ctx, request.(LoginRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(LoginResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitLoginResponse(ctx.Writer)
	})
}

// Register operation middleware
func (sh *strictHandler) Register(ctx *gin.Context) {
	var request RegisterRequestObject
	body, ok := bindJSON[RegisterJSONRequestBody](ctx)
	if !ok {
		return
	}
	request.Body = body
	sh.serve(ctx, "Register", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.Register(ctx, request.(RegisterRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(RegisterResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitRegisterResponse(ctx.Writer)
	})
}

// RefreshToken operation middleware
func (sh *strictHandler) RefreshToken(ctx *gin.Context) {
	var request RefreshTokenRequestObject
	body, ok := bindJSON[RefreshTokenJSONRequestBody](ctx)
	if !ok {
		return
	}
	request.Body = body
	sh.serve(ctx, "RefreshToken", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.RefreshToken(ctx, request.(RefreshTokenRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(RefreshTokenResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitRefreshTokenResponse(ctx.Writer)
	})
}

// Logout operation middleware
func (sh *strictHandler) Logout(ctx *gin.Context) {
	var request LogoutRequestObject
	sh.serve(ctx, "Logout", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.Logout(ctx, request.(LogoutRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(LogoutResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitLogoutResponse(ctx.Writer)
	})
}

// GetProfile operation middleware
func (sh *strictHandler) GetProfile(ctx *gin.Context) {
	var request GetProfileRequestObject
	sh.serve(ctx, "GetProfile", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetProfile(ctx, request.(GetProfileRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetProfileResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetProfileResponse(ctx.Writer)
	})
}

// GetRecords operation middleware
func (sh *strictHandler) GetRecords(ctx *gin.Context, params GetRecordsParams) {
	var request GetRecordsRequestObject
	request.Params = params
	sh.serve(ctx, "GetRecords", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetRecords(ctx, request.(GetRecordsRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetRecordsResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetRecordsResponse(ctx.Writer)
	})
}

// CreateRecord operation middleware
func (sh *strictHandler) CreateRecord(ctx *gin.Context) {
	var request CreateRecordRequestObject
	body, ok := bindJSON[CreateRecordJSONRequestBody](ctx)
	if !ok {
		return
	}
	request.Body = body
	sh.serve(ctx, "CreateRecord", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.CreateRecord(ctx, request.(CreateRecordRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(CreateRecordResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitCreateRecordResponse(ctx.Writer)
	})
}

// UpdateRecord operation middleware
func (sh *strictHandler) UpdateRecord(ctx *gin.Context, id string) {
	var request UpdateRecordRequestObject
	request.Id = id
	body, ok := bindJSON[UpdateRecordJSONRequestBody](ctx)
	if !ok {
		return
	}
	request.Body = body
	sh.serve(ctx, "UpdateRecord", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.UpdateRecord(ctx, request.(UpdateRecordRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(UpdateRecordResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitUpdateRecordResponse(ctx.Writer)
	})
}

// RequestDelete operation middleware
func (sh *strictHandler) RequestDelete(ctx *gin.Context, id string) {
	var request RequestDeleteRequestObject
	request.Id = id
	sh.serve(ctx, "RequestDelete", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.RequestDelete(ctx, request.(RequestDeleteRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(RequestDeleteResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitRequestDeleteResponse(ctx.Writer)
	})
}

// ConfirmPending operation middleware
func (sh *strictHandler) ConfirmPending(ctx *gin.Context) {
	var request ConfirmPendingRequestObject
	sh.serve(ctx, "ConfirmPending", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ConfirmPending(ctx, request.(ConfirmPendingRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ConfirmPendingResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitConfirmPendingResponse(ctx.Writer)
	})
}

// CancelPending operation middleware
func (sh *strictHandler) CancelPending(ctx *gin.Context) {
	var request CancelPendingRequestObject
	sh.serve(ctx, "CancelPending", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.CancelPending(ctx, request.(CancelPendingRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(CancelPendingResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitCancelPendingResponse(ctx.Writer)
	})
}

// GetStats operation middleware
func (sh *strictHandler) GetStats(ctx *gin.Context) {
	var request GetStatsRequestObject
	sh.serve(ctx, "GetStats", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetStats(ctx, request.(GetStatsRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetStatsResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetStatsResponse(ctx.Writer)
	})
}

// ImportCSV operation middleware
func (sh *strictHandler) ImportCSV(ctx *gin.Context) {
	var request ImportCSVRequestObject
	request.Body = ctx.Request.Body
	sh.serve(ctx, "ImportCSV", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ImportCSV(ctx, request.(ImportCSVRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ImportCSVResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitImportCSVResponse(ctx.Writer)
	})
}

// ImportJSON operation middleware
func (sh *strictHandler) ImportJSON(ctx *gin.Context) {
	var request ImportJSONRequestObject
	request.Body = ctx.Request.Body
	sh.serve(ctx, "ImportJSON", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ImportJSON(ctx, request.(ImportJSONRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ImportJSONResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitImportJSONResponse(ctx.Writer)
	})
}

// ImportBackup operation middleware
func (sh *strictHandler) ImportBackup(ctx *gin.Context) {
	var request ImportBackupRequestObject
	request.Body = ctx.Request.Body
	sh.serve(ctx, "ImportBackup", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ImportBackup(ctx, request.(ImportBackupRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ImportBackupResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitImportBackupResponse(ctx.Writer)
	})
}

// ExportCSV operation middleware
func (sh *strictHandler) ExportCSV(ctx *gin.Context) {
	var request ExportCSVRequestObject
	sh.serve(ctx, "ExportCSV", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ExportCSV(ctx, request.(ExportCSVRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ExportCSVResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitExportCSVResponse(ctx.Writer)
	})
}

// ExportJSON operation middleware
func (sh *strictHandler) ExportJSON(ctx *gin.Context, params ExportJSONParams) {
	var request ExportJSONRequestObject
	request.Params = params
	sh.serve(ctx, "ExportJSON", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ExportJSON(ctx, request.(ExportJSONRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ExportJSONResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitExportJSONResponse(ctx.Writer)
	})
}

// GetBackup operation middleware
func (sh *strictHandler) GetBackup(ctx *gin.Context) {
	var request GetBackupRequestObject
	sh.serve(ctx, "GetBackup", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetBackup(ctx, request.(GetBackupRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetBackupResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetBackupResponse(ctx.Writer)
	})
}

// ListArchivedBackups operation middleware
func (sh *strictHandler) ListArchivedBackups(ctx *gin.Context) {
	var request ListArchivedBackupsRequestObject
	sh.serve(ctx, "ListArchivedBackups", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ListArchivedBackups(ctx, request.(ListArchivedBackupsRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ListArchivedBackupsResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitListArchivedBackupsResponse(ctx.Writer)
	})
}

// ArchiveBackup operation middleware
func (sh *strictHandler) ArchiveBackup(ctx *gin.Context) {
	var request ArchiveBackupRequestObject
	sh.serve(ctx, "ArchiveBackup", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ArchiveBackup(ctx, request.(ArchiveBackupRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ArchiveBackupResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitArchiveBackupResponse(ctx.Writer)
	})
}

// RestoreBackup operation middleware
func (sh *strictHandler) RestoreBackup(ctx *gin.Context) {
	var request RestoreBackupRequestObject
	body, ok := bindJSON[RestoreBackupJSONRequestBody](ctx)
	if !ok {
		return
	}
	request.Body = body
	sh.serve(ctx, "RestoreBackup", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.RestoreBackup(ctx, request.(RestoreBackupRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(RestoreBackupResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitRestoreBackupResponse(ctx.Writer)
	})
}

// GetTemplate operation middleware
func (sh *strictHandler) GetTemplate(ctx *gin.Context, format GetTemplateParamsFormat) {
	var request GetTemplateRequestObject
	request.Format = format
	sh.serve(ctx, "GetTemplate", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetTemplate(ctx, request.(GetTemplateRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetTemplateResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetTemplateResponse(ctx.Writer)
	})
}

// GetNotifications operation middleware
func (sh *strictHandler) GetNotifications(ctx *gin.Context) {
	var request GetNotificationsRequestObject
	sh.serve(ctx, "GetNotifications", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetNotifications(ctx, request.(GetNotificationsRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetNotificationsResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetNotificationsResponse(ctx.Writer)
	})
}

// StreamNotifications operation middleware
func (sh *strictHandler) StreamNotifications(ctx *gin.Context) {
	var request StreamNotificationsRequestObject
	sh.serve(ctx, "StreamNotifications", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.StreamNotifications(ctx, request.(StreamNotificationsRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(StreamNotificationsResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitStreamNotificationsResponse(ctx.Writer)
	})
}

// GetTheme operation middleware
func (sh *strictHandler) GetTheme(ctx *gin.Context) {
	var request GetThemeRequestObject
	sh.serve(ctx, "GetTheme", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.GetTheme(ctx, request.(GetThemeRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(GetThemeResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitGetThemeResponse(ctx.Writer)
	})
}

// PutTheme operation middleware
func (sh *strictHandler) PutTheme(ctx *gin.Context) {
	var request PutThemeRequestObject
	body, ok := bindJSON[PutThemeJSONRequestBody](ctx)
	if !ok {
		return
	}
	request.Body = body
	sh.serve(ctx, "PutTheme", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.PutTheme(ctx, request.(PutThemeRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(PutThemeResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitPutThemeResponse(ctx.Writer)
	})
}

// ToggleTheme operation middleware
func (sh *strictHandler) ToggleTheme(ctx *gin.Context) {
	var request ToggleThemeRequestObject
	sh.serve(ctx, "ToggleTheme", request, func(ctx *gin.Context, request interface{}) (interface{}, error) {
		return sh.ssi.ToggleTheme(ctx, request.(ToggleThemeRequestObject))
	}, func(response interface{}) (bool, error) {
		r, ok := response.(ToggleThemeResponseObject)
		if !ok {
			return false, nil
		}
		return true, r.VisitToggleThemeResponse(ctx.Writer)
	})
}
