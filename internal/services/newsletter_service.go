package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"delphine/internal/repos"
)

var ErrAlreadySubscribed = errors.New("already subscribed")

type NewsletterService struct {
	Repo *repos.NewsletterRepo
}

func NewNewsletterService(r *repos.NewsletterRepo) *NewsletterService {
	return &NewsletterService{Repo: r}
}

// Subscribe adds the email, reactivating a lapsed subscription. A
// duplicate active subscription is an error surfaced to the caller.
// Returns true when this was a returning subscriber.
func (s *NewsletterService) Subscribe(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.Repo.ByEmail(email)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	if existing != nil {
		if existing.Active {
			return false, ErrAlreadySubscribed
		}
		return true, s.Repo.Reactivate(email)
	}
	return false, s.Repo.Create(uuid.NewString(), email)
}
