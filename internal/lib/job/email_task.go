package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the job type name stored in Redis.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload of the welcome email task.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// NewWelcomeEmailTask builds the welcome email task: three retries on the
// default queue, killed after 30 seconds.
func NewWelcomeEmailTask(to, name, lang string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:   to,
		Name: name,
		Lang: lang,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
