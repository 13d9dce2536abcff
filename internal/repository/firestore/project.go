package firestore

import (
	"context"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/repository"

	"cloud.google.com/go/firestore"
)

type projectRepository struct {
	client *firestore.Client
}

func NewProjectRepository(client *firestore.Client) repository.ProjectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.client.Collection(projectsCollection).Doc(p.ID).Create(ctx, p)
	return err
}

func (r *projectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	snap, err := r.client.Collection(projectsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	p := &domain.Project{}
	if err := snap.DataTo(p); err != nil {
		return nil, err
	}
	p.ID = snap.Ref.ID
	return p, nil
}

// Update writes the review fields only.
func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	_, err := r.client.Collection(projectsCollection).Doc(p.ID).Update(ctx, []firestore.Update{
		{Path: "status", Value: p.Status},
		{Path: "featured", Value: p.Featured},
		{Path: "approvedAt", Value: p.ApprovedAt},
		{Path: "adminNote", Value: p.AdminNote},
	})
	return mapNotFound(err)
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	q := r.client.Collection(projectsCollection).Query
	if filter.Status != "" {
		q = q.Where("status", "==", string(filter.Status))
	}
	if filter.OwnerID != "" {
		q = q.Where("ownerId", "==", filter.OwnerID)
	}
	return collect(ctx, q.OrderBy("submittedAt", firestore.Desc), func(p *domain.Project, id string) {
		p.ID = id
	})
}
