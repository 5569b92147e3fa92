package usecase

import (
	"github.com/secmon-lab/themis/pkg/domain/interfaces"
	"github.com/secmon-lab/themis/pkg/service/classifier"
	"github.com/secmon-lab/themis/pkg/service/narrative"
	"github.com/secmon-lab/themis/pkg/service/notify"
)

type UseCases struct {
	repo       interfaces.Repository
	classifier *classifier.Service
	notify     notify.Service
	narrative  *narrative.Service
}

type Option func(*UseCases)

// WithNotify enables Slack notification for HIGH/UNACCEPTABLE outcomes
func WithNotify(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notify = svc
	}
}

// WithNarrative enables LLM-drafted assessment narratives
func WithNarrative(svc *narrative.Service) Option {
	return func(uc *UseCases) {
		uc.narrative = svc
	}
}

func New(repo interfaces.Repository, svc *classifier.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		classifier: svc,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
