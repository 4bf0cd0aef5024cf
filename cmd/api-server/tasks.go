package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/protomem/task-tracker/internal/ctxstore"
	"github.com/protomem/task-tracker/internal/database"
	"github.com/protomem/task-tracker/internal/model"
	"github.com/protomem/task-tracker/internal/request"
	"github.com/protomem/task-tracker/internal/response"
	"github.com/protomem/task-tracker/internal/validator"
)

type requestCreateTask struct {
	TaskName string `json:"taskName"`
	Category string `json:"category"`
	Time     string `json:"time"`
	Status   string `json:"status"`
}

func (app *application) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := app.logger.With(
		_traceIDKey.String(), ctxstore.MustFrom[string](ctx, _traceIDKey),
	)
	owner := app.authenticatedUser(r)

	var input requestCreateTask
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateTaskName(&v, input.TaskName)
	validateCategory(&v, input.Category)
	validateTaskStatus(&v, input.Status)
	scheduledAt, err := parseTaskTime(input.Time)
	v.CheckField(err == nil, "time", "must be a valid timestamp")

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	status, _ := model.ParseTaskStatus(input.Status)

	dao := database.NewTaskDAO(logger, app.db)

	taskID, err := dao.Insert(ctx, database.InsertTaskDTO{
		User:        owner,
		Name:        input.TaskName,
		Category:    input.Category,
		ScheduledAt: scheduledAt,
		Status:      status,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	task, err := dao.Get(ctx, taskID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, task); err != nil {
		app.serverError(w, r, err)
	}
}

type requestUpdateTask struct {
	TaskID   model.TaskID `json:"taskId"`
	TaskName string       `json:"taskName"`
	Category string       `json:"category"`
	Time     string       `json:"time"`
	Status   string       `json:"status"`
}

func (app *application) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := app.logger.With(
		_traceIDKey.String(), ctxstore.MustFrom[string](ctx, _traceIDKey),
	)
	owner := app.authenticatedUser(r)

	var input requestUpdateTask
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	v.CheckField(input.TaskID >= 1, "taskId", "must be a positive integer")
	validateTaskName(&v, input.TaskName)
	validateCategory(&v, input.Category)
	validateTaskStatus(&v, input.Status)
	scheduledAt, err := parseTaskTime(input.Time)
	v.CheckField(err == nil, "time", "must be a valid timestamp")

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	status, _ := model.ParseTaskStatus(input.Status)

	dao := database.NewTaskDAO(logger, app.db)

	task, err := dao.Get(ctx, input.TaskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	// Ownership check: mismatch is Forbidden, distinct from not found.
	if task.User != owner {
		app.forbidden(w, r)
		return
	}

	err = dao.Update(ctx, input.TaskID, database.UpdateTaskDTO{
		Name:        input.TaskName,
		Category:    input.Category,
		ScheduledAt: scheduledAt,
		Status:      status,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	task, err = dao.Get(ctx, input.TaskID)
	if err != nil {
		// The task may have been deleted between the update and the re-read.
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, task); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := app.logger.With(
		_traceIDKey.String(), ctxstore.MustFrom[string](ctx, _traceIDKey),
	)
	owner := app.authenticatedUser(r)

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	dao := database.NewTaskDAO(logger, app.db)

	task, err := dao.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			app.errorMessage(w, r, http.StatusNotFound, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if task.User != owner {
		app.forbidden(w, r)
		return
	}

	if err := dao.Delete(ctx, taskID); err != nil {
		app.serverError(w, r, err)
		return
	}

	message := fmt.Sprintf("Task with ID %d deleted successfully", taskID)
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"message": message}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := app.logger.With(
		_traceIDKey.String(), ctxstore.MustFrom[string](ctx, _traceIDKey),
	)

	dao := database.NewTaskDAO(logger, app.db)

	tasks, err := dao.FindAll(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, tasks); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleListUserTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := app.logger.With(
		_traceIDKey.String(), ctxstore.MustFrom[string](ctx, _traceIDKey),
	)
	owner := app.authenticatedUser(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	// A caller may only list their own tasks.
	if userID != owner {
		app.forbidden(w, r)
		return
	}

	dao := database.NewTaskDAO(logger, app.db)

	tasks, err := dao.FindByUser(ctx, userID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, tasks); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleTaskStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := app.logger.With(
		_traceIDKey.String(), ctxstore.MustFrom[string](ctx, _traceIDKey),
	)

	dao := database.NewTaskDAO(logger, app.db)

	counts, err := dao.CountByStatus(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	stats := response.JSONObject{"total_tasks": total}
	for _, status := range model.TaskStatuses() {
		stats[status.String()+"_tasks"] = counts[status]
	}

	if err := response.JSON(w, http.StatusOK, stats); err != nil {
		app.serverError(w, r, err)
	}
}
