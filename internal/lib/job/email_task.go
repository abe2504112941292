package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome    = "email:welcome"
	TaskPhotoLiked = "email:photo_liked"
)

const (
	taskMaxRetry = 3
	taskTimeout  = 30 * time.Second
)

type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// NewWelcomeEmailTask builds the task sent after sign-up.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:   to,
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(taskMaxRetry),
		asynq.Queue(QueueDefault),
		asynq.Timeout(taskTimeout),
	), nil
}

type PhotoLikedEmailPayload struct {
	To         string `json:"to"`
	OwnerName  string `json:"owner_name"`
	LikerLogin string `json:"liker_login"`
	PhotoID    int64  `json:"photo_id"`
	PhotoTitle string `json:"photo_title"`
}

// NewPhotoLikedEmailTask builds the notification sent to a photo's owner.
//
// The task is unique per (liker, photo) for an hour so like/unlike cycles
// do not flood the owner's inbox.
func NewPhotoLikedEmailTask(p PhotoLikedEmailPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskPhotoLiked,
		payload,
		asynq.MaxRetry(taskMaxRetry),
		asynq.Queue(QueueLow),
		asynq.Timeout(taskTimeout),
		asynq.TaskID(fmt.Sprintf("photo_liked:%d:%s", p.PhotoID, p.LikerLogin)),
		asynq.Retention(time.Hour),
	), nil
}
