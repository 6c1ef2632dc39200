package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"acadport/api"
	"acadport/clients/identity"
	"acadport/clients/storage"
	"acadport/services/gateway"
	"acadport/services/record"
	"acadport/services/session"
	"acadport/services/transfer"
	"acadport/services/user"
	"acadport/validator"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// ensure that we've conformed to the `StrictServerInterface` with a compile-time check
var _ api.StrictServerInterface = (*Server)(nil)

const (
	maxUploadBytes = 5 << 20
	heartbeat      = 15 * time.Second
)

var (
	ErrUnauthenticated = errors.New("missing access token")
	ErrArchiveDisabled = errors.New("backup archive is not configured")
	ErrUploadTooLarge  = errors.New("upload too large")
)

type Server struct {
	Identity identity.Client
	Sessions session.Manager
	Users    user.Service
	// Archive is nil when no backup bucket is configured.
	Archive storage.Archive
}

func NewServer(identityClient identity.Client, sessions session.Manager, users user.Service, archive storage.Archive) Server {
	return Server{
		Identity: identityClient,
		Sessions: sessions,
		Users:    users,
		Archive:  archive,
	}
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	var (
		authErr       *identity.AuthError
		validationErr *gateway.ValidationError
		parseErr      *transfer.ParseError
		aggregateErr  *transfer.AggregateImportError
		writeErr      *gateway.WriteError
	)
	switch {
	case errors.As(err, &authErr):
		switch authErr.Kind {
		case identity.KindInvalidCredentials:
			return http.StatusUnauthorized
		case identity.KindAlreadyExists:
			return http.StatusConflict
		case identity.KindInvalidInput:
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, session.ErrSignedOut):
		return http.StatusUnauthorized
	case errors.Is(err, record.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gateway.ErrNothingPending):
		return http.StatusConflict
	case errors.Is(err, transfer.ErrNothingToExport):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrArchiveDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr), errors.As(err, &parseErr),
		errors.Is(err, transfer.ErrFormat), errors.Is(err, transfer.ErrEmptyInput),
		errors.Is(err, transfer.ErrUnknownTemplate), errors.Is(err, session.ErrInvalidCriteria),
		errors.Is(err, session.ErrInvalidLayout), errors.Is(err, user.ErrInvalidTheme),
		errors.Is(err, storage.ErrInvalidName):
		return http.StatusBadRequest
	case errors.As(err, &aggregateErr), errors.As(err, &writeErr):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrClosed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondErrors writes the error a handler returns as a JSON error body with
// the status statusOf picks for it.
func RespondErrors(f api.StrictHandlerFunc, operationID string) api.StrictHandlerFunc {
	return func(c *gin.Context, request interface{}) (interface{}, error) {
		response, err := f(c, request)
		if err == nil {
			return response, nil
		}
		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			slog.With("error", err.Error()).Error("request failed", "operation", operationID, "status", status)
		}
		c.JSON(status, api.Error{Error: err.Error()})
		return nil, nil
	}
}

// current returns the session of the authenticated caller, opening one if the
// caller has none yet.
func (s Server) current(ctx context.Context) (*session.Session, error) {
	access, ok := validator.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.Sessions.Ensure(access.Principal)
}

// detached is the context record writes run on. Writes outlive a client that
// disconnects and complete or fail on their own.
func detached(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

func attachment(file transfer.File) api.AttachmentResponse {
	return api.AttachmentResponse{
		Body:          bytes.NewReader(file.Content),
		Headers:       api.AttachmentResponseHeaders{ContentDisposition: fmt.Sprintf("attachment; filename=%q", file.Name)},
		ContentType:   file.ContentType,
		ContentLength: int64(len(file.Content)),
	}
}

func readBody(body io.Reader) (string, error) {
	if body == nil {
		return "", transfer.ErrEmptyInput
	}
	data, err := io.ReadAll(io.LimitReader(body, maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > maxUploadBytes {
		return "", ErrUploadTooLarge
	}
	return string(data), nil
}

func (s Server) GetPing(ctx context.Context, request api.GetPingRequestObject) (api.GetPingResponseObject, error) {
	return api.GetPing200JSONResponse{Ping: "pong"}, nil
}

func (s Server) signedIn(ctx context.Context, account *identity.Account) session.Principal {
	p := session.Principal{UID: account.UID, Email: account.Email, DisplayName: account.DisplayName}
	_, err := s.Users.EnsureUser(ctx, &user.User{ID: p.UID, DisplayName: p.DisplayName, Email: p.Email})
	if err != nil {
		// The profile only carries preferences; sign-in still succeeds.
		slog.With("error", err.Error()).Warn("failed to ensure user profile", "uid", p.UID)
	}
	return p
}

func (s Server) Login(ctx context.Context, request api.LoginRequestObject) (api.LoginResponseObject, error) {
	account, err := s.Identity.SignIn(ctx, request.Body.UserId, request.Body.Password)
	if err != nil {
		var authErr *identity.AuthError
		if errors.As(err, &authErr) && authErr.Kind == identity.KindInvalidCredentials {
			return api.Login401JSONResponse{ErrorJSONResponse: api.ErrorJSONResponse{
				Error: "Invalid credentials: " + authErr.Message,
			}}, nil
		}
		return nil, err
	}
	sess := s.Sessions.Open(s.signedIn(ctx, account))
	sess.Notices().Success("Login successful!")
	return api.Login200JSONResponse{AuthJSONResponse: api.AuthJSONResponse(api.TransformAccount(account, "Login successful!"))}, nil
}

func (s Server) Register(ctx context.Context, request api.RegisterRequestObject) (api.RegisterResponseObject, error) {
	account, err := s.Identity.SignUp(ctx, identity.SignUpRequest{
		Name:     request.Body.Name,
		UserID:   request.Body.UserId,
		Password: request.Body.Password,
		Confirm:  request.Body.ConfirmPassword,
	})
	if err != nil {
		return nil, err
	}
	message := fmt.Sprintf("Welcome, %s!", account.DisplayName)
	sess := s.Sessions.Open(s.signedIn(ctx, account))
	sess.Notices().Success(message)
	return api.Register201JSONResponse{AuthJSONResponse: api.AuthJSONResponse(api.TransformAccount(account, message))}, nil
}

func (s Server) RefreshToken(ctx context.Context, request api.RefreshTokenRequestObject) (api.RefreshTokenResponseObject, error) {
	account, err := s.Identity.Refresh(ctx, request.Body.RefreshToken)
	if err != nil {
		return nil, err
	}
	return api.RefreshToken200JSONResponse{AuthJSONResponse: api.AuthJSONResponse(api.TransformAccount(account, "Token refreshed"))}, nil
}

func (s Server) Logout(ctx context.Context, request api.LogoutRequestObject) (api.LogoutResponseObject, error) {
	access, ok := validator.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	s.Sessions.SignOut(access.Principal.UID)
	return api.Logout200JSONResponse{MessageJSONResponse: api.MessageJSONResponse{Message: "Logged out successfully!"}}, nil
}

func (s Server) GetProfile(ctx context.Context, request api.GetProfileRequestObject) (api.GetProfileResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	p := sess.Principal()
	theme, err := s.Users.GetTheme(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	return api.GetProfile200JSONResponse{
		Uid:         p.UID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Theme:       api.Theme(theme),
		Welcome:     fmt.Sprintf("Welcome back, %s!", p.Name()),
	}, nil
}

func (s Server) GetRecords(ctx context.Context, request api.GetRecordsRequestObject) (api.GetRecordsResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	params := request.Params
	if params.Layout != nil {
		if err := sess.SetLayout(session.Layout(*params.Layout)); err != nil {
			return nil, err
		}
	}
	state := sess.View()
	if criteria, changed := params.MergeCriteria(state.Criteria); changed {
		if state, err = sess.SetCriteria(criteria); err != nil {
			return nil, err
		}
	}
	return api.GetRecords200JSONResponse(api.TransformDashboard(state)), nil
}

func (s Server) save(ctx context.Context, id string, body *api.RecordInput) error {
	sess, err := s.current(ctx)
	if err != nil {
		return err
	}
	return sess.Save(detached(ctx), id, body.ToFields())
}

func (s Server) CreateRecord(ctx context.Context, request api.CreateRecordRequestObject) (api.CreateRecordResponseObject, error) {
	if err := s.save(ctx, "", request.Body); err != nil {
		return nil, err
	}
	return api.CreateRecord202JSONResponse{MessageJSONResponse: api.MessageJSONResponse{Message: "Entry added!"}}, nil
}

func (s Server) UpdateRecord(ctx context.Context, request api.UpdateRecordRequestObject) (api.UpdateRecordResponseObject, error) {
	if err := s.save(ctx, request.Id, request.Body); err != nil {
		return nil, err
	}
	return api.UpdateRecord202JSONResponse{MessageJSONResponse: api.MessageJSONResponse{Message: "Entry updated!"}}, nil
}

func (s Server) RequestDelete(ctx context.Context, request api.RequestDeleteRequestObject) (api.RequestDeleteResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if err := sess.RequestDelete(request.Id); err != nil {
		return nil, err
	}
	return api.RequestDelete202JSONResponse{
		TargetId: request.Id,
		Message:  "Are you sure you want to delete this entry?",
	}, nil
}

func (s Server) ConfirmPending(ctx context.Context, request api.ConfirmPendingRequestObject) (api.ConfirmPendingResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if err := sess.ConfirmDelete(detached(ctx)); err != nil {
		return nil, err
	}
	return api.ConfirmPending200JSONResponse{MessageJSONResponse: api.MessageJSONResponse{Message: "Entry deleted!"}}, nil
}

func (s Server) CancelPending(ctx context.Context, request api.CancelPendingRequestObject) (api.CancelPendingResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	sess.CancelDelete()
	return api.CancelPending200JSONResponse{MessageJSONResponse: api.MessageJSONResponse{Message: "Delete cancelled."}}, nil
}

func (s Server) GetStats(ctx context.Context, request api.GetStatsRequestObject) (api.GetStatsResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetStats200JSONResponse(api.TransformStats(sess.Stats())), nil
}

// importOutcome splits an import result into the body to send and whether the
// import failed part way. Any other error is returned as is.
func importOutcome(n int, err error) (api.ImportJSONResponse, bool, error) {
	var aggregateErr *transfer.AggregateImportError
	switch {
	case errors.As(err, &aggregateErr):
		return api.ImportJSONResponse{
			Imported: n,
			Failed:   &aggregateErr.Failed,
			Message:  "Import error: " + err.Error(),
		}, true, nil
	case err != nil:
		return api.ImportJSONResponse{}, false, err
	}
	return api.ImportJSONResponse{
		Imported: n,
		Message:  fmt.Sprintf("Successfully imported %d entries!", n),
	}, false, nil
}

func (s Server) importWith(ctx context.Context, body io.Reader, run func(sess *session.Session, text string) (int, error)) (api.ImportJSONResponse, bool, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return api.ImportJSONResponse{}, false, err
	}
	text, err := readBody(body)
	if err != nil {
		return api.ImportJSONResponse{}, false, err
	}
	return importOutcome(run(sess, text))
}

func (s Server) ImportCSV(ctx context.Context, request api.ImportCSVRequestObject) (api.ImportCSVResponseObject, error) {
	result, partial, err := s.importWith(ctx, request.Body, func(sess *session.Session, text string) (int, error) {
		return sess.ImportCSV(detached(ctx), text)
	})
	switch {
	case err != nil:
		return nil, err
	case partial:
		return api.ImportCSV502JSONResponse{ImportJSONResponse: result}, nil
	}
	return api.ImportCSV200JSONResponse{ImportJSONResponse: result}, nil
}

func (s Server) ImportJSON(ctx context.Context, request api.ImportJSONRequestObject) (api.ImportJSONResponseObject, error) {
	result, partial, err := s.importWith(ctx, request.Body, func(sess *session.Session, text string) (int, error) {
		return sess.ImportJSON(detached(ctx), text)
	})
	switch {
	case err != nil:
		return nil, err
	case partial:
		return api.ImportJSON502JSONResponse{ImportJSONResponse: result}, nil
	}
	return api.ImportJSON200JSONResponse{ImportJSONResponse: result}, nil
}

func (s Server) ImportBackup(ctx context.Context, request api.ImportBackupRequestObject) (api.ImportBackupResponseObject, error) {
	result, partial, err := s.importWith(ctx, request.Body, func(sess *session.Session, text string) (int, error) {
		return sess.ImportBackup(detached(ctx), text)
	})
	switch {
	case err != nil:
		return nil, err
	case partial:
		return api.ImportBackup502JSONResponse{ImportJSONResponse: result}, nil
	}
	return api.ImportBackup200JSONResponse{ImportJSONResponse: result}, nil
}

func (s Server) exportWith(ctx context.Context, run func(sess *session.Session) (transfer.File, error)) (api.AttachmentResponse, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return api.AttachmentResponse{}, err
	}
	file, err := run(sess)
	if err != nil {
		return api.AttachmentResponse{}, err
	}
	return attachment(file), nil
}

func (s Server) ExportCSV(ctx context.Context, request api.ExportCSVRequestObject) (api.ExportCSVResponseObject, error) {
	file, err := s.exportWith(ctx, (*session.Session).ExportCSV)
	if err != nil {
		return nil, err
	}
	return api.ExportCSV200Response{AttachmentResponse: file}, nil
}

func (s Server) ExportJSON(ctx context.Context, request api.ExportJSONRequestObject) (api.ExportJSONResponseObject, error) {
	filtered := request.Params.Filtered != nil && *request.Params.Filtered
	file, err := s.exportWith(ctx, func(sess *session.Session) (transfer.File, error) {
		return sess.ExportJSON(filtered)
	})
	if err != nil {
		return nil, err
	}
	return api.ExportJSON200Response{AttachmentResponse: file}, nil
}

func (s Server) GetBackup(ctx context.Context, request api.GetBackupRequestObject) (api.GetBackupResponseObject, error) {
	file, err := s.exportWith(ctx, (*session.Session).Backup)
	if err != nil {
		return nil, err
	}
	return api.GetBackup200Response{AttachmentResponse: file}, nil
}

func (s Server) GetTemplate(ctx context.Context, request api.GetTemplateRequestObject) (api.GetTemplateResponseObject, error) {
	file, err := s.exportWith(ctx, func(sess *session.Session) (transfer.File, error) {
		return sess.Template(string(request.Format))
	})
	if err != nil {
		return nil, err
	}
	return api.GetTemplate200Response{AttachmentResponse: file}, nil
}

// archived returns the caller's session once the archive is known to be
// configured.
func (s Server) archived(ctx context.Context) (*session.Session, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if s.Archive == nil {
		return nil, ErrArchiveDisabled
	}
	return sess, nil
}

func (s Server) ListArchivedBackups(ctx context.Context, request api.ListArchivedBackupsRequestObject) (api.ListArchivedBackupsResponseObject, error) {
	sess, err := s.archived(ctx)
	if err != nil {
		return nil, err
	}
	objects, err := s.Archive.List(ctx, sess.Principal().UID)
	if err != nil {
		return nil, err
	}
	result := make(api.ListArchivedBackups200JSONResponse, 0, len(objects))
	for _, o := range objects {
		result = append(result, api.TransformArchived(o))
	}
	return result, nil
}

func (s Server) ArchiveBackup(ctx context.Context, request api.ArchiveBackupRequestObject) (api.ArchiveBackupResponseObject, error) {
	sess, err := s.archived(ctx)
	if err != nil {
		return nil, err
	}
	file, err := sess.Backup()
	if err != nil {
		return nil, err
	}
	object, err := s.Archive.Upload(detached(ctx), sess.Principal().UID, file.Name, file.ContentType, file.Content)
	if err != nil {
		sess.Notices().Error("Error: " + err.Error())
		return nil, err
	}
	return api.ArchiveBackup201JSONResponse(api.TransformArchived(object)), nil
}

func (s Server) RestoreBackup(ctx context.Context, request api.RestoreBackupRequestObject) (api.RestoreBackupResponseObject, error) {
	sess, err := s.archived(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.Archive.Download(ctx, sess.Principal().UID, request.Body.Name)
	if err != nil {
		return nil, err
	}
	result, partial, err := importOutcome(sess.ImportBackup(detached(ctx), string(content)))
	switch {
	case err != nil:
		return nil, err
	case partial:
		return api.RestoreBackup502JSONResponse{ImportJSONResponse: result}, nil
	}
	return api.RestoreBackup200JSONResponse{ImportJSONResponse: result}, nil
}

func (s Server) GetNotifications(ctx context.Context, request api.GetNotificationsRequestObject) (api.GetNotificationsResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return api.GetNotifications200JSONResponse(api.TransformNotifications(sess.Notifications())), nil
}

func (s Server) StreamNotifications(ctx context.Context, request api.StreamNotificationsRequestObject) (api.StreamNotificationsResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	events, stop := sess.Notices().Listen()
	done := ctx.Done()

	r, w := io.Pipe()
	go func() {
		defer stop()
		defer w.Close()

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()
		for {
			var event sse.Event
			select {
			case <-done:
				return
			case <-ticker.C:
				event = sse.Event{Event: "ping", Data: ""}
			case n, ok := <-events:
				if !ok {
					return
				}
				event = sse.Event{Event: "notification", Data: api.TransformNotification(n)}
			}
			// Fails once the response side of the pipe is closed.
			if err := sse.Encode(w, event); err != nil {
				return
			}
		}
	}()
	return api.StreamNotifications200TexteventStreamResponse{Body: r}, nil
}

func (s Server) GetTheme(ctx context.Context, request api.GetThemeRequestObject) (api.GetThemeResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	theme, err := s.Users.GetTheme(ctx, sess.Principal().UID)
	if err != nil {
		return nil, err
	}
	return api.GetTheme200JSONResponse{ThemeJSONResponse: api.ThemeJSONResponse{Theme: api.Theme(theme)}}, nil
}

func (s Server) PutTheme(ctx context.Context, request api.PutThemeRequestObject) (api.PutThemeResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	theme, err := user.ParseTheme(string(request.Body.Theme))
	if err != nil {
		return nil, err
	}
	if err := s.Users.SetTheme(ctx, sess.Principal().UID, theme); err != nil {
		return nil, err
	}
	return api.PutTheme200JSONResponse{ThemeJSONResponse: api.ThemeJSONResponse{Theme: api.Theme(theme)}}, nil
}

func (s Server) ToggleTheme(ctx context.Context, request api.ToggleThemeRequestObject) (api.ToggleThemeResponseObject, error) {
	sess, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	theme, err := s.Users.ToggleTheme(ctx, sess.Principal().UID)
	if err != nil {
		return nil, err
	}
	return api.ToggleTheme200JSONResponse{ThemeJSONResponse: api.ThemeJSONResponse{Theme: api.Theme(theme)}}, nil
}
