package gifts

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

// LogReceived records a gift and fires giftReceived. An anonymous gift
// keeps whatever giver name was stored, but the notification omits it.
func (s *Service) LogReceived(weddingID string, gift *ReceivedGift) error {
	if strings.TrimSpace(gift.GiftName) == "" {
		return errors.New("gift name is required")
	}

	if err := s.repo.Create(gift); err != nil {
		return err
	}

	giverName := gift.GiverName
	if gift.IsAnonymous {
		giverName = ""
	}
	err := s.dispatcher.Notify(weddingID, webhooks.EventGiftReceived, webhooks.GiftReceivedPayload{
		GiftName:    gift.GiftName,
		GiverName:   giverName,
		IsAnonymous: gift.IsAnonymous,
	})
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("gift received notification rejected")
	}
	return nil
}

func (s *Service) List() ([]*ReceivedGift, error) {
	return s.repo.List()
}

func (s *Service) Delete(giftID string) error {
	return s.repo.Delete(giftID)
}
