package webhooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"wedplan/internal/platform/database"
	"wedplan/internal/platform/models"
	"wedplan/internal/platform/repositories"
)

// Caller misuse is the only error class Notify surfaces; everything past
// "accepted for dispatch" is absorbed and logged.
var (
	ErrMissingWeddingID = errors.New("wedding id is required")
	ErrUnknownEventType = errors.New("unknown event type")
)

const maxLoggedBodyLen = 500

// Envelope is the wire format POSTed to subscriber endpoints.
type Envelope struct {
	Event     string      `json:"event"`
	Timestamp string      `json:"timestamp"`
	Payload   interface{} `json:"payload"`
	WeddingID string      `json:"weddingId"`
}

// Dispatcher fans an event out to every qualifying endpoint of a wedding.
// Delivery is a side effect of the triggering write, never a precondition:
// Notify returns before any HTTP call is made, deliveries run in detached
// goroutines, and a dead endpoint can only ever show up in the log view.
type Dispatcher struct {
	weddings *repositories.WeddingRepository
	pool     *database.TenantDBPool
	client   *http.Client
	wg       sync.WaitGroup
}

func NewDispatcher(weddings *repositories.WeddingRepository, pool *database.TenantDBPool, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Dispatcher{
		weddings: weddings,
		pool:     pool,
		client:   &http.Client{Timeout: timeout},
	}
}

// Notify dispatches eventType with payload to every active endpoint of the
// wedding that opted in to it. An error is returned only for caller misuse
// (empty wedding id, event outside the taxonomy); missing configuration and
// delivery failures are not errors here.
func (d *Dispatcher) Notify(weddingID string, eventType Event, payload interface{}) error {
	if weddingID == "" {
		return ErrMissingWeddingID
	}
	if !eventType.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownEventType, eventType)
	}

	wedding, err := d.weddings.GetByID(weddingID)
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("webhook dispatch: failed to load wedding")
		return nil
	}
	if wedding == nil {
		log.Warn().Str("wedding_id", weddingID).Msg("webhook dispatch: wedding not found")
		return nil
	}

	db, err := d.pool.Get(wedding.ID, wedding.DBFilePath)
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("webhook dispatch: failed to open tenant database")
		return nil
	}

	endpoints, err := repositories.NewWebhookEndpointRepository(db).ListActiveForEvent(string(eventType))
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("webhook dispatch: failed to list endpoints")
		return nil
	}
	if len(endpoints) == 0 {
		return nil
	}

	// Endpoints are assumed to require authentication; without a token
	// there is nothing legitimate to send.
	token, err := repositories.NewAccessTokenRepository(db).GetActive()
	if err != nil {
		log.Error().Err(err).Str("wedding_id", weddingID).Msg("webhook dispatch: failed to load access token")
		return nil
	}
	if token == nil {
		log.Warn().Str("wedding_id", weddingID).Str("event", string(eventType)).Msg("webhook dispatch: no access token issued, skipping delivery")
		return nil
	}

	body, err := json.Marshal(Envelope{
		Event:     string(eventType),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
		WeddingID: weddingID,
	})
	if err != nil {
		log.Error().Err(err).Str("event", string(eventType)).Msg("webhook dispatch: failed to marshal payload")
		return nil
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		payloadJSON = []byte("null")
	}

	logs := repositories.NewWebhookLogRepository(db)
	for _, endpoint := range endpoints {
		d.wg.Add(1)
		go func(endpoint *models.WebhookEndpoint) {
			defer d.wg.Done()
			d.deliver(logs, endpoint, eventType, body, string(payloadJSON), token.Token)
		}(endpoint)
	}

	return nil
}

// deliver performs one HTTP POST and records the outcome. Each attempt is
// terminal: no retries, no replay state. Transport failures are logged as
// a 503 so the tenant's log view distinguishes "unreachable" from a real
// upstream status.
func (d *Dispatcher) deliver(logs *repositories.WebhookLogRepository, endpoint *models.WebhookEndpoint, eventType Event, body []byte, payloadJSON, token string) {
	var (
		status       int
		responseBody string
		success      bool
	)

	req, err := http.NewRequest(http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		status = http.StatusServiceUnavailable
		responseBody = err.Error()
	} else {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := d.client.Do(req)
		if err != nil {
			status = http.StatusServiceUnavailable
			responseBody = err.Error()
			log.Error().Err(err).Str("url", endpoint.URL).Str("event", string(eventType)).Msg("webhook delivery failed")
		} else {
			status = resp.StatusCode
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4*maxLoggedBodyLen))
			resp.Body.Close()
			responseBody = string(b)
			success = status >= 200 && status < 300
		}
	}

	entry := &models.WebhookLog{
		EndpointID:     endpoint.ID,
		EventType:      string(eventType),
		Payload:        payloadJSON,
		ResponseStatus: status,
		ResponseBody:   truncate(responseBody, maxLoggedBodyLen),
		Success:        success,
	}
	if err := logs.Create(entry); err != nil {
		log.Error().Err(err).Str("endpoint_id", endpoint.ID).Msg("failed to write webhook delivery log")
	}
}

// Wait blocks until all in-flight deliveries have resolved and been
// logged. Used on shutdown so detached attempts are not dropped mid-POST.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
