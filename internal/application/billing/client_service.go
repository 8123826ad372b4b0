package billing

import (
	"context"

	"github.com/billcraft/backend/internal/domain/billing"
	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo billing.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo billing.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, companyID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := billing.NewClient(companyID, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, companyID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForCompany(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves all clients for a company
func (s *ClientService) List(ctx context.Context, companyID uuid.UUID, page, pageSize int) ([]ClientResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	clients, err := s.clientRepo.FindAllForCompany(ctx, companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses, nil
}

// Delete deletes a client that has no quotes or invoices
func (s *ClientService) Delete(ctx context.Context, companyID, clientID uuid.UUID) error {
	if _, err := s.clientRepo.FindByIDForCompany(ctx, companyID, clientID); err != nil {
		return err
	}

	hasDocs, err := s.clientRepo.HasDocuments(ctx, companyID, clientID)
	if err != nil {
		return err
	}
	if hasDocs {
		return shared.NewDomainError("REFERENTIAL_CONFLICT", "Client has quotes or invoices and cannot be deleted")
	}

	return s.clientRepo.Delete(ctx, companyID, clientID)
}
