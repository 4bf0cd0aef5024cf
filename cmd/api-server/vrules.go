package main

import (
	"fmt"

	"github.com/protomem/task-tracker/internal/model"
	"github.com/protomem/task-tracker/internal/validator"
)

// Validation rules

func validateEmail(v *validator.Validator, email string) {
	v.CheckField(validator.NotBlank(email), "email", "cannot be blank")
	v.CheckField(validator.IsEmail(email), "email", "must be a valid email address")
}

func validatePassword(v *validator.Validator, password string) {
	v.CheckField(validator.NotBlank(password), "password", "cannot be blank")
	v.CheckField(validator.MinRunes(password, 8), "password", "must be at least 8 characters")
	v.CheckField(validator.MaxRunes(password, 72), "password", "must be at most 72 characters")
}

func validateNickname(v *validator.Validator, nickname string) {
	v.CheckField(validator.NotBlank(nickname), "nickname", "cannot be blank")
	v.CheckField(validator.MaxRunes(nickname, 100), "nickname", "must be at most 100 characters")
}

func validateGender(v *validator.Validator, gender string) {
	v.CheckField(validator.NotBlank(gender), "gender", "cannot be blank")
}

func validateRelationship(v *validator.Validator, relationship string) {
	v.CheckField(validator.NotBlank(relationship), "relationship", "cannot be blank")
}

func validateTaskName(v *validator.Validator, taskName string) {
	v.CheckField(validator.NotBlank(taskName), "taskName", "cannot be blank")
	v.CheckField(validator.MaxRunes(taskName, 200), "taskName", "must be at most 200 characters")
}

func validateCategory(v *validator.Validator, category string) {
	v.CheckField(validator.NotBlank(category), "category", "cannot be blank")
	v.CheckField(validator.MaxRunes(category, 100), "category", "must be at most 100 characters")
}

func validateTaskStatus(v *validator.Validator, status string) {
	_, err := model.ParseTaskStatus(status)
	v.CheckField(err == nil, "status", fmt.Sprintf("must be one of: %v", model.TaskStatuses()))
}
