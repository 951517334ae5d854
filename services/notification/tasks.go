package notification

import (
	"encoding/json"

	"freightbook/models"

	"github.com/hibiken/asynq"
)

const TypeStatusNotify = "notify:status"

// NewStatusTask wraps a status message as an asynq task for the notify queue.
func NewStatusTask(msg models.StatusMessage) (*asynq.Task, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStatusNotify, b), nil
}
