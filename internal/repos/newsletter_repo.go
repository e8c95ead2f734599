package repos

import (
	"delphine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type NewsletterRepo struct{ db *sqlx.DB }

func NewNewsletterRepo(db *sqlx.DB) *NewsletterRepo { return &NewsletterRepo{db: db} }

func (r *NewsletterRepo) ByEmail(email string) (*domain.NewsletterSubscriber, error) {
	var s domain.NewsletterSubscriber
	err := r.db.Get(&s, `
	  SELECT id, email, active, subscribed_at, unsubscribed_at
	  FROM newsletter_subscribers WHERE LOWER(email)=LOWER(?)
	`, email)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *NewsletterRepo) Create(id, email string) error {
	_, err := r.db.Exec(`
	  INSERT INTO newsletter_subscribers(id, email, active, subscribed_at)
	  VALUES(?,?,1,CURRENT_TIMESTAMP)
	`, id, email)
	return err
}

func (r *NewsletterRepo) Reactivate(email string) error {
	_, err := r.db.Exec(`
	  UPDATE newsletter_subscribers SET active=1, unsubscribed_at=''
	  WHERE LOWER(email)=LOWER(?)
	`, email)
	return err
}

func (r *NewsletterRepo) Deactivate(email string) error {
	_, err := r.db.Exec(`
	  UPDATE newsletter_subscribers SET active=0, unsubscribed_at=CURRENT_TIMESTAMP
	  WHERE LOWER(email)=LOWER(?)
	`, email)
	return err
}

func (r *NewsletterRepo) ListActive() ([]domain.NewsletterSubscriber, error) {
	var out []domain.NewsletterSubscriber
	err := r.db.Select(&out, `
	  SELECT id, email, active, subscribed_at, unsubscribed_at
	  FROM newsletter_subscribers
	  WHERE active=1
	  ORDER BY datetime(subscribed_at) DESC
	`)
	return out, err
}
