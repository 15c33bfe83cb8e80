package planner

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"wedplan/internal/engine/webhooks"
)

type Service struct {
	repo       *Repository
	dispatcher *webhooks.Dispatcher
}

func NewService(repo *Repository, dispatcher *webhooks.Dispatcher) *Service {
	return &Service{repo: repo, dispatcher: dispatcher}
}

func (s *Service) Create(task *Task) error {
	if strings.TrimSpace(task.Text) == "" {
		return errors.New("task text is required")
	}
	return s.repo.Create(task)
}

func (s *Service) List() ([]*Task, error) {
	return s.repo.List()
}

// SetCompleted flips a task's done flag. The taskCompleted notification
// fires on the not-done to done transition only; the task's own update
// succeeds regardless of what happens to deliveries.
func (s *Service) SetCompleted(weddingID, taskID string, completed bool) (*Task, error) {
	task, err := s.repo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.New("task not found")
	}

	if task.Completed == completed {
		return task, nil
	}

	if err := s.repo.SetCompleted(taskID, completed); err != nil {
		return nil, err
	}
	task.Completed = completed

	if completed {
		err := s.dispatcher.Notify(weddingID, webhooks.EventTaskCompleted, webhooks.TaskCompletedPayload{
			TaskText:  task.Text,
			Completed: true,
		})
		if err != nil {
			log.Error().Err(err).Str("wedding_id", weddingID).Msg("task completed notification rejected")
		}
	}
	return task, nil
}

func (s *Service) Delete(taskID string) error {
	return s.repo.Delete(taskID)
}
