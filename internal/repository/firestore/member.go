package firestore

import (
	"context"
	"time"

	"builderclub-backend/internal/domain"
	"builderclub-backend/internal/logger"
	"builderclub-backend/internal/repository"

	"cloud.google.com/go/firestore"
)

type memberRepository struct {
	client *firestore.Client
}

func NewMemberRepository(client *firestore.Client) repository.MemberRepository {
	return &memberRepository{client: client}
}

func (r *memberRepository) Get(ctx context.Context, uid string) (*domain.Member, error) {
	snap, err := r.client.Collection(membersCollection).Doc(uid).Get(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}
	m := &domain.Member{}
	if err := snap.DataTo(m); err != nil {
		return nil, err
	}
	m.UID = snap.Ref.ID
	return m, nil
}

func (r *memberRepository) Save(ctx context.Context, m *domain.Member) error {
	logger.DatabaseCall("SET", membersCollection, "uid", m.UID)
	_, err := r.client.Collection(membersCollection).Doc(m.UID).Set(ctx, m)
	logger.DatabaseResult("SET", 1, err)
	return err
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	return collect(ctx, r.client.Collection(membersCollection).Query, func(m *domain.Member, id string) {
		m.UID = id
	})
}

func (r *memberRepository) SetAdmin(ctx context.Context, uid string, admin bool) error {
	_, err := r.client.Collection(membersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "isAdmin", Value: admin},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	return mapNotFound(err)
}

func (r *memberRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.client.Collection(membersCollection).Doc(uid).Delete(ctx, firestore.Exists)
	return mapNotFound(err)
}
