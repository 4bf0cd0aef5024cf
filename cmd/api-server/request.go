package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/protomem/task-tracker/internal/model"
)

func taskIDFromRequest(r *http.Request) (model.TaskID, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "taskId"), 10, 64)
	return model.TaskID(id), err
}

func userIDFromRequest(r *http.Request) (model.UserID, error) {
	id := chi.URLParam(r, "userId")
	if id == "" {
		return "", errors.New("missing user id")
	}
	return id, nil
}

// The original accepted ISO timestamps with or without a zone.
var _taskTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTaskTime(s string) (time.Time, error) {
	for _, layout := range _taskTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid task time")
}
