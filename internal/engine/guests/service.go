package guests

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

func (s *Service) Create(weddingID string, guest *Guest) error {
	if strings.TrimSpace(guest.Name) == "" {
		return errors.New("guest name is required")
	}
	if guest.Status == "" {
		guest.Status = StatusPending
	}
	if !ValidStatus(guest.Status) {
		return errors.New("invalid guest status")
	}

	if err := s.repo.Create(guest); err != nil {
		return err
	}

	// A guest added straight in as confirmed or declined is an RSVP.
	if guest.Status != StatusPending {
		s.notifyRSVP(weddingID, guest.Name, guest.Status, StatusPending)
	}
	return nil
}

// SetStatus records an RSVP. The notification only fires when the status
// actually changed; re-submitting the same answer is a no-op.
func (s *Service) SetStatus(weddingID, guestID, status string) (*Guest, error) {
	if !ValidStatus(status) {
		return nil, errors.New("invalid guest status")
	}

	guest, err := s.repo.GetByID(guestID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, errors.New("guest not found")
	}

	oldStatus := guest.Status
	if oldStatus == status {
		return guest, nil
	}

	guest.Status = status
	if err := s.repo.Update(guest); err != nil {
		return nil, err
	}

	s.notifyRSVP(weddingID, guest.Name, status, oldStatus)
	return guest, nil
}

func (s *Service) Get(guestID string) (*Guest, error) {
	return s.repo.GetByID(guestID)
}

func (s *Service) List() ([]*Guest, error) {
	return s.repo.List()
}

func (s *Service) Update(weddingID string, guestID string, updates *Guest) (*Guest, error) {
	guest, err := s.repo.GetByID(guestID)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, errors.New("guest not found")
	}

	if updates.Name != "" {
		guest.Name = updates.Name
	}
	if updates.GroupName != "" {
		guest.GroupName = updates.GroupName
	}

	oldStatus := guest.Status
	statusChanged := updates.Status != "" && updates.Status != oldStatus
	if statusChanged {
		if !ValidStatus(updates.Status) {
			return nil, errors.New("invalid guest status")
		}
		guest.Status = updates.Status
	}

	if err := s.repo.Update(guest); err != nil {
		return nil, err
	}

	if statusChanged {
		s.notifyRSVP(weddingID, guest.Name, guest.Status, oldStatus)
	}
	return guest, nil
}

func (s *Service) Delete(guestID string) error {
	return s.repo.Delete(guestID)
}

func (s *Service) notifyRSVP(weddingID, guestName, status, oldStatus string) {
	err := s.dispatcher.Notify(weddingID, webhooks.EventGuestRSVP, webhooks.GuestRSVPPayload{
		GuestName: guestName,
		Status:    status,
		OldStatus: oldStatus,
	})
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("guest rsvp notification rejected")
	}
}
