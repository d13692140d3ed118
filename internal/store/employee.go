package store

import (
	"context"

	"github.com/grocerhub/grocer-api/internal/domain"
)

// EmployeeStore persists employees. Implementations own empId generation
// and must never return the password hash inside domain.Employee values;
// the hash travels separately through GetCredentials.
type EmployeeStore interface {
	// List returns all employees, without credentials.
	List(ctx context.Context) ([]domain.Employee, error)

	// GetByEmpID returns the employee with the given id.
	// Returns ErrEmployeeNotFound if it does not exist.
	GetByEmpID(ctx context.Context, empID int) (*domain.Employee, error)

	// GetCredentials returns the employee with the given username along
	// with their stored password hash, for login verification.
	// Returns ErrEmployeeNotFound if it does not exist.
	GetCredentials(ctx context.Context, username string) (*domain.Employee, string, error)

	// Create inserts a new employee with the given password hash and
	// assigns the next free empId.
	// Returns ErrUsernameExists on username collision and
	// ErrEmpIDExhausted when the id space is full.
	Create(ctx context.Context, e *domain.Employee, passwordHash string) error

	// Delete removes the employee with the given id and returns it.
	// Returns ErrEmployeeNotFound if it does not exist.
	Delete(ctx context.Context, empID int) (*domain.Employee, error)
}
