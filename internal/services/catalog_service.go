package services

import (
	"delphine/internal/domain"
	"delphine/internal/repos"
)

type CatalogService struct {
	Cats   *repos.CategoryRepo
	Prods  *repos.ProductRepo
	Slides *repos.SlideRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, slides *repos.SlideRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Slides: slides}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// ListProducts returns active products, featured first then newest,
// optionally filtered by category slug.
func (s *CatalogService) ListProducts(limit int, categorySlug string) ([]domain.Product, error) {
	return s.Prods.List(limit, categorySlug)
}

func (s *CatalogService) GetProductBySlug(slug string) (domain.Product, error) {
	return s.Prods.BySlug(slug)
}

func (s *CatalogService) HeroSlides() ([]domain.HeroSlide, error) {
	return s.Slides.ListActive()
}
