package soundtrack

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

func (s *Service) Suggest(weddingID string, song *Song) error {
	if strings.TrimSpace(song.Title) == "" {
		return errors.New("song title is required")
	}

	if err := s.repo.Create(song); err != nil {
		return err
	}

	err := s.dispatcher.Notify(weddingID, webhooks.EventSongSuggested, webhooks.SongSuggestedPayload{
		Title:       song.Title,
		Artist:      song.Artist,
		SuggestedBy: song.SuggestedBy,
	})
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("song suggested notification rejected")
	}
	return nil
}

func (s *Service) List() ([]*Song, error) {
	return s.repo.List()
}

func (s *Service) Delete(songID string) error {
	return s.repo.Delete(songID)
}
