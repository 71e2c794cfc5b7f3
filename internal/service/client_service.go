package service

import (
	"context"
	"fmt"

	"github.com/gleysonwener/new-lu/internal/domain"
	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/repository"

	"github.com/google/uuid"
)

// ClientService enforces owner scoping: every read and update is restricted
// to the requesting principal's rows, and a foreign id behaves exactly like a
// missing one.
type ClientService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*dto.ClientResponse, error)
	List(ctx context.Context, ownerID uuid.UUID, filter dto.ClientFilter) ([]dto.ClientResponse, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	// Delete is admin-only at the route layer and therefore unscoped here.
	Delete(ctx context.Context, id uuid.UUID) error
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// Create rejects duplicates per owner. CPF is checked before email on
// purpose: when both collide, the CPF conflict is the one reported.
func (s *clientService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if _, err := s.repo.FindByCPF(ctx, req.CPF, ownerID); err == nil {
		return nil, fmt.Errorf("%w: client with CPF %s already exists for this user", domain.ErrDuplicate, req.CPF)
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email, ownerID); err == nil {
		return nil, fmt.Errorf("%w: client with email %s already exists for this user", domain.ErrDuplicate, req.Email)
	}

	client := &model.Client{
		Name:    req.Name,
		Email:   req.Email,
		CPF:     req.CPF,
		OwnerID: ownerID,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *clientService) Get(ctx context.Context, id, ownerID uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return clientToResponse(client), nil
}

func (s *clientService) List(ctx context.Context, ownerID uuid.UUID, filter dto.ClientFilter) ([]dto.ClientResponse, error) {
	clients, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientResponse, len(clients))
	for i, c := range clients {
		resp[i] = *clientToResponse(&c)
	}
	return resp, nil
}

func (s *clientService) Update(ctx context.Context, id, ownerID uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	if req.CPF != nil && *req.CPF != client.CPF {
		if existing, err := s.repo.FindByCPF(ctx, *req.CPF, ownerID); err == nil && existing.ID != client.ID {
			return nil, fmt.Errorf("%w: client with CPF %s already exists for this user", domain.ErrDuplicate, *req.CPF)
		}
		client.CPF = *req.CPF
	}
	if req.Email != nil && *req.Email != client.Email {
		if existing, err := s.repo.FindByEmail(ctx, *req.Email, ownerID); err == nil && existing.ID != client.ID {
			return nil, fmt.Errorf("%w: client with email %s already exists for this user", domain.ErrDuplicate, *req.Email)
		}
		client.Email = *req.Email
	}
	if req.Name != nil {
		client.Name = *req.Name
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func clientToResponse(c *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Email:   c.Email,
		CPF:     c.CPF,
		OwnerID: c.OwnerID.String(),
	}
}
