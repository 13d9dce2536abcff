package firestore

import (
	"context"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"

	"cloud.google.com/go/firestore"
)

type resourceRepository struct {
	client *firestore.Client
}

func NewResourceRepository(client *firestore.Client) repository.ResourceRepository {
	return &resourceRepository{client: client}
}

func (r *resourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	_, err := r.client.Collection(resourcesCollection).Doc(res.ID).Create(ctx, res)
	return err
}

func (r *resourceRepository) Get(ctx context.Context, id string) (*domain.Resource, error) {
	snap, err := r.client.Collection(resourcesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	res := &domain.Resource{}
	if err := snap.DataTo(res); err != nil {
		return nil, err
	}
	res.ID = snap.Ref.ID
	return res, nil
}

func (r *resourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	ref := r.client.Collection(resourcesCollection).Doc(res.ID)
	if _, err := ref.Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := ref.Set(ctx, res)
	return err
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(resourcesCollection).Doc(id).Delete(ctx, firestore.Exists)
	return mapNotFound(err)
}

func (r *resourceRepository) List(ctx context.Context, publishedOnly bool) ([]domain.Resource, error) {
	q := r.client.Collection(resourcesCollection).Query
	if publishedOnly {
		q = q.Where("published", "==", true)
	}
	return collect(ctx, q.OrderBy("order", firestore.Asc), func(res *domain.Resource, id string) {
		res.ID = id
	})
}

type caseStudyRepository struct {
	client *firestore.Client
}

func NewCaseStudyRepository(client *firestore.Client) repository.CaseStudyRepository {
	return &caseStudyRepository{client: client}
}

func (r *caseStudyRepository) Create(ctx context.Context, c *domain.CaseStudy) error {
	_, err := r.client.Collection(caseStudiesCollection).Doc(c.ID).Create(ctx, c)
	return err
}

func (r *caseStudyRepository) Get(ctx context.Context, id string) (*domain.CaseStudy, error) {
	snap, err := r.client.Collection(caseStudiesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	c := &domain.CaseStudy{}
	if err := snap.DataTo(c); err != nil {
		return nil, err
	}
	c.ID = snap.Ref.ID
	return c, nil
}

func (r *caseStudyRepository) Update(ctx context.Context, c *domain.CaseStudy) error {
	ref := r.client.Collection(caseStudiesCollection).Doc(c.ID)
	if _, err := ref.Get(ctx); err != nil {
		return mapNotFound(err)
	}
	_, err := ref.Set(ctx, c)
	return err
}

func (r *caseStudyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(caseStudiesCollection).Doc(id).Delete(ctx, firestore.Exists)
	return mapNotFound(err)
}

func (r *caseStudyRepository) List(ctx context.Context, publishedOnly bool) ([]domain.CaseStudy, error) {
	q := r.client.Collection(caseStudiesCollection).Query
	if publishedOnly {
		q = q.Where("published", "==", true)
	}
	return collect(ctx, q.OrderBy("order", firestore.Asc), func(c *domain.CaseStudy, id string) {
		c.ID = id
	})
}
