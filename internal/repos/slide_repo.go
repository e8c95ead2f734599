package repos

import (
	"delphine/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SlideRepo struct{ db *sqlx.DB }

func NewSlideRepo(db *sqlx.DB) *SlideRepo { return &SlideRepo{db: db} }

func (r *SlideRepo) ListActive() ([]domain.HeroSlide, error) {
	var out []domain.HeroSlide
	err := r.db.Select(&out, `
	  SELECT id, title, subtitle, image, cta_label, cta_href, position, active
	  FROM hero_slides
	  WHERE active=1
	  ORDER BY position ASC
	`)
	return out, err
}
