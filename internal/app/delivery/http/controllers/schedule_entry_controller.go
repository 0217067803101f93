package controllers

import (
	"context"
	"errors"
	"net/http"
	"schedule-ledger-service/internal/app/config"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/pkg/constvars"
	"schedule-ledger-service/internal/pkg/dto/requests"
	"schedule-ledger-service/internal/pkg/exceptions"
	"schedule-ledger-service/internal/pkg/utils"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ScheduleEntryController struct {
	Log                  *zap.Logger
	ScheduleEntryUsecase contracts.ScheduleEntryUsecase
	InternalConfig       *config.InternalConfig
}

var (
	scheduleEntryControllerInstance *ScheduleEntryController
	onceScheduleEntryController     sync.Once
)

func NewScheduleEntryController(logger *zap.Logger, scheduleEntryUsecase contracts.ScheduleEntryUsecase, internalConfig *config.InternalConfig) *ScheduleEntryController {
	onceScheduleEntryController.Do(func() {
		scheduleEntryControllerInstance = newScheduleEntryController(logger, scheduleEntryUsecase, internalConfig)
	})
	return scheduleEntryControllerInstance
}

func newScheduleEntryController(logger *zap.Logger, scheduleEntryUsecase contracts.ScheduleEntryUsecase, internalConfig *config.InternalConfig) *ScheduleEntryController {
	return &ScheduleEntryController{
		Log:                  logger,
		ScheduleEntryUsecase: scheduleEntryUsecase,
		InternalConfig:       internalConfig,
	}
}

func (ctrl *ScheduleEntryController) CreateEntry(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.CreateEntry")
	if !ok {
		return
	}

	request := new(requests.CreateScheduleEntry)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.CreateEntry error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.CreateEntry validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.CreateEntry(ctx, request)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.CreateEntry", requestID, err)
		return
	}

	ctrl.Log.Info("ScheduleEntryController.CreateEntry succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateScheduleEntrySuccessMessage, result)
}

func (ctrl *ScheduleEntryController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.FindByID")
	if !ok {
		return
	}
	entryID, ok := ctrl.entryID(w, r, "ScheduleEntryController.FindByID", requestID)
	if !ok {
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.FindByID(ctx, entryID)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.FindByID", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetScheduleEntrySuccessMessage, result)
}

func (ctrl *ScheduleEntryController) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.UpdateEntry")
	if !ok {
		return
	}
	entryID, ok := ctrl.entryID(w, r, "ScheduleEntryController.UpdateEntry", requestID)
	if !ok {
		return
	}

	request := new(requests.UpdateScheduleEntry)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.UpdateEntry error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.UpdateEntry validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.UpdateEntry(ctx, entryID, request)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.UpdateEntry", requestID, err)
		return
	}

	ctrl.Log.Info("ScheduleEntryController.UpdateEntry succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
		zap.Int(constvars.LoggingTouchedCountKey, len(result.Renumbered)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateScheduleEntrySuccessMessage, result)
}

func (ctrl *ScheduleEntryController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.MarkPaid")
	if !ok {
		return
	}
	entryID, ok := ctrl.entryID(w, r, "ScheduleEntryController.MarkPaid", requestID)
	if !ok {
		return
	}

	request := new(requests.MarkScheduleEntryPaid)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.MarkPaid error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.MarkPaid validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.MarkPaidAndActivate(ctx, entryID, request)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.MarkPaid", requestID, err)
		return
	}

	ctrl.Log.Info("ScheduleEntryController.MarkPaid succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
		zap.Bool("activated", result.Activated),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PayScheduleEntrySuccessMessage, result)
}

func (ctrl *ScheduleEntryController) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.DeleteEntry")
	if !ok {
		return
	}
	entryID, ok := ctrl.entryID(w, r, "ScheduleEntryController.DeleteEntry", requestID)
	if !ok {
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	if err := ctrl.ScheduleEntryUsecase.DeleteEntry(ctx, entryID); err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.DeleteEntry", requestID, err)
		return
	}

	ctrl.Log.Info("ScheduleEntryController.DeleteEntry succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntryIDKey, entryID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteScheduleEntrySuccessMessage, nil)
}

func (ctrl *ScheduleEntryController) FindWeek(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.FindWeek")
	if !ok {
		return
	}

	request := &requests.FindScheduleWeek{
		WeekStart: r.URL.Query().Get(constvars.URLQueryParamWeekStart),
	}
	if request.WeekStart == "" {
		request.WeekStart = time.Now().Format(constvars.DateLayout)
	}
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.FindWeek validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidFormat(err, constvars.URLQueryParamWeekStart))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.FindWeek(ctx, request)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.FindWeek", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetScheduleWeekSuccessMessage, result)
}

func (ctrl *ScheduleEntryController) ProjectWeek(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.ProjectWeek")
	if !ok {
		return
	}

	request := new(requests.ProjectScheduleWeek)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.ProjectWeek error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.ProjectWeek validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.ProjectWeek(ctx, request)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.ProjectWeek", requestID, err)
		return
	}

	ctrl.Log.Info("ScheduleEntryController.ProjectWeek succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNextWeekStartKey, result.NextWeekStart),
		zap.Int(constvars.LoggingEntryCountKey, len(result.Appended)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ProjectScheduleWeekSuccessMessage, result)
}

func (ctrl *ScheduleEntryController) FindClientEntries(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.FindClientEntries")
	if !ok {
		return
	}
	clientID, ok := ctrl.clientID(w, r, "ScheduleEntryController.FindClientEntries", requestID)
	if !ok {
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.FindClientEntries(ctx, clientID)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.FindClientEntries", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetClientScheduleSuccessMessage, result)
}

func (ctrl *ScheduleEntryController) ResolveSubscriptionRun(w http.ResponseWriter, r *http.Request) {
	requestID, ok := ctrl.requestID(w, r, "ScheduleEntryController.ResolveSubscriptionRun")
	if !ok {
		return
	}
	clientID, ok := ctrl.clientID(w, r, "ScheduleEntryController.ResolveSubscriptionRun", requestID)
	if !ok {
		return
	}

	query := r.URL.Query()
	request := &requests.FindSubscriptionRun{
		ClientID: clientID,
		Date:     query.Get(constvars.URLQueryParamDate),
		Time:     query.Get(constvars.URLQueryParamTime),
	}
	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("ScheduleEntryController.ResolveSubscriptionRun validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := ctrl.withTimeout(r)
	defer cancel()

	result, err := ctrl.ScheduleEntryUsecase.ResolveSubscriptionRun(ctx, request)
	if err != nil {
		ctrl.usecaseError(w, "ScheduleEntryController.ResolveSubscriptionRun", requestID, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSubscriptionRunSuccessMessage, result)
}

func (ctrl *ScheduleEntryController) requestID(w http.ResponseWriter, r *http.Request, method string) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error(method + " requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	ctrl.Log.Info(method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return requestID, true
}

func (ctrl *ScheduleEntryController) entryID(w http.ResponseWriter, r *http.Request, method, requestID string) (string, bool) {
	entryID := chi.URLParam(r, constvars.URLParamEntryID)
	if err := utils.ValidateUrlParamID(entryID); err != nil {
		ctrl.Log.Error(method+" invalid entry id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamEntryID))
		return "", false
	}
	return entryID, true
}

func (ctrl *ScheduleEntryController) clientID(w http.ResponseWriter, r *http.Request, method, requestID string) (string, bool) {
	clientID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamClientID))
	if clientID == "" {
		err := errors.New("parameter is missing from url path")
		ctrl.Log.Error(method+" missing client id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamClientID))
		return "", false
	}
	return clientID, true
}

func (ctrl *ScheduleEntryController) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
}

func (ctrl *ScheduleEntryController) usecaseError(w http.ResponseWriter, method, requestID string, err error) {
	ctrl.Log.Error(method+" error from usecase",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
