package budget

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

// AddItem persists a new expense and fires budgetItemAdded. Only creation
// notifies; edits to an existing item do not.
func (s *Service) AddItem(weddingID string, item *Item) error {
	if strings.TrimSpace(item.Description) == "" {
		return errors.New("item description is required")
	}
	if item.Status == "" {
		item.Status = StatusPlanned
	}
	if !ValidStatus(item.Status) {
		return errors.New("invalid item status")
	}

	if err := s.repo.Create(item); err != nil {
		return err
	}

	err := s.dispatcher.Notify(weddingID, webhooks.EventBudgetItemAdded, webhooks.BudgetItemAddedPayload{
		Description:   item.Description,
		Supplier:      item.Supplier,
		EstimatedCost: item.EstimatedCost,
		ActualCost:    item.ActualCost,
	})
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("budget item notification rejected")
	}
	return nil
}

func (s *Service) List() ([]*Item, error) {
	return s.repo.List()
}

func (s *Service) Update(itemID string, updates *Item) (*Item, error) {
	item, err := s.repo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("budget item not found")
	}

	if updates.Description != "" {
		item.Description = updates.Description
	}
	if updates.Supplier != "" {
		item.Supplier = updates.Supplier
	}
	if updates.EstimatedCost != 0 {
		item.EstimatedCost = updates.EstimatedCost
	}
	if updates.ActualCost != 0 {
		item.ActualCost = updates.ActualCost
	}
	if updates.Status != "" {
		if !ValidStatus(updates.Status) {
			return nil, errors.New("invalid item status")
		}
		item.Status = updates.Status
	}

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(itemID string) error {
	return s.repo.Delete(itemID)
}
