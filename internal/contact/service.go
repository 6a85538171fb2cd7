// Package contact handles contact form intake from the marketing pages.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/latency"
	"github.com/tejaworks/interndesk/internal/pkg/metrics"
	"github.com/tejaworks/interndesk/internal/store"
	"golang.org/x/time/rate"
)

// Service errors.
var (
	ErrRateLimited = errors.New("too many submissions, try again later")
)

// Config contains contact service configuration.
type Config struct {
	// RateLimit is the sustained number of submissions allowed per second.
	// Zero disables rate limiting.
	RateLimit float64
	// RateBurst is the burst size for the limiter.
	RateBurst int
}

// Service stores submitted contact messages.
type Service struct {
	store   store.Store
	delay   *latency.Injector
	limiter *rate.Limiter
}

// NewService creates a new contact service.
func NewService(st store.Store, delay *latency.Injector, cfg Config) *Service {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Service{store: st, delay: delay, limiter: limiter}
}

// SubmitInput holds a contact form submission.
type SubmitInput struct {
	FullName    string
	Email       string
	Phone       string
	ServiceType domain.ServiceType
	Message     string
}

// Submit appends the message to the stored collection and returns it.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.ContactMessage, error) {
	defer s.delay.Wait(ctx)

	if s.limiter != nil && !s.limiter.Allow() {
		metrics.ContactSubmissions.WithLabelValues("rate_limited").Inc()
		return nil, ErrRateLimited
	}

	var messages []domain.ContactMessage
	err := store.GetJSON(ctx, s.store, store.KeyContactMessages, &messages)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load contact messages: %w", err)
	}

	msg := domain.ContactMessage{
		ID:          uuid.NewString(),
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       input.Phone,
		ServiceType: input.ServiceType,
		Message:     input.Message,
		ReceivedAt:  time.Now().UTC(),
	}

	messages = append(messages, msg)
	if err := store.SetJSON(ctx, s.store, store.KeyContactMessages, messages); err != nil {
		metrics.ContactSubmissions.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("save contact messages: %w", err)
	}

	metrics.ContactSubmissions.WithLabelValues("ok").Inc()
	return &msg, nil
}

// List returns all stored contact messages in submission order.
func (s *Service) List(ctx context.Context) ([]domain.ContactMessage, error) {
	defer s.delay.Wait(ctx)

	var messages []domain.ContactMessage
	err := store.GetJSON(ctx, s.store, store.KeyContactMessages, &messages)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return nil, fmt.Errorf("load contact messages: %w", err)
	}
	if messages == nil {
		messages = []domain.ContactMessage{}
	}
	return messages, nil
}
