package mocks

import (
	"context"

	"github.com/pep299/portfolio-pulse/internal/model"
)

// MockGenerationRepo records triggers and optionally fails them.
type MockGenerationRepo struct {
	Triggered  int
	TriggerErr error
}

func (m *MockGenerationRepo) Trigger(ctx context.Context, portfolio *model.Portfolio) error {
	m.Triggered++
	return m.TriggerErr
}

// MockDocumentRepo serves a canned document library and content map.
type MockDocumentRepo struct {
	Docs     []model.DocumentMeta
	ListErr  error
	Content  map[string]string
	FetchErr error
}

func (m *MockDocumentRepo) ListDocuments(ctx context.Context) ([]model.DocumentMeta, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Docs, nil
}

func (m *MockDocumentRepo) FetchContent(ctx context.Context, ref model.ContentRef) (string, error) {
	if m.FetchErr != nil {
		return "", m.FetchErr
	}
	if ref.Kind == model.ContentInline {
		return ref.Text, nil
	}
	return m.Content[ref.URI], nil
}

// MockNotifier records sent digests.
type MockNotifier struct {
	Sent    []*model.Digest
	SendErr error
}

func (m *MockNotifier) SendDigest(ctx context.Context, digest *model.Digest) error {
	m.Sent = append(m.Sent, digest)
	return m.SendErr
}
