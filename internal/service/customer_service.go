// backend-go/internal/service/customer_service.go
package service

import (
	"context"
	"strings"

	"github.com/besco/backend-go/internal/domain"
	"github.com/besco/backend-go/internal/repository"
)

type CustomerService struct {
	customers repository.CustomerRepository
}

func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *CustomerService) Create(ctx context.Context, name string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("customer name is required")
	}
	return s.customers.Create(ctx, name)
}

// Delete removes the customer along with every order placed under that name.
// Inventory is not restored; deleting a customer is bookkeeping cleanup, not
// an order reversal.
func (s *CustomerService) Delete(ctx context.Context, name string) error {
	return s.customers.DeleteByName(ctx, name)
}
