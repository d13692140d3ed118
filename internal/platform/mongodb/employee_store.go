package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/store"
)

// firstEmpID is where id generation starts for an empty collection.
const firstEmpID = 100

// createAttempts bounds retries when concurrent creates race for the
// same generated empId.
const createAttempts = 3

// employeeDoc is the persisted employee layout. The password hash never
// crosses into domain.Employee.
type employeeDoc struct {
	EmpID        int       `bson:"empId"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d *employeeDoc) toDomain() *domain.Employee {
	return &domain.Employee{
		EmpID:     d.EmpID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Username:  d.Username,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// EmployeeStore is the MongoDB implementation of store.EmployeeStore.
type EmployeeStore struct {
	coll *mongo.Collection
}

var _ store.EmployeeStore = (*EmployeeStore)(nil)

// NewEmployeeStore creates an EmployeeStore backed by the employees
// collection.
func NewEmployeeStore(db *DB) *EmployeeStore {
	return &EmployeeStore{coll: db.collection(employeesCollection)}
}

// List implements store.EmployeeStore.
func (s *EmployeeStore) List(ctx context.Context) ([]domain.Employee, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "empId", Value: 1}}))
	if err != nil {
		return nil, translate(err, "list employees", store.ErrEmployeeNotFound, store.ErrUsernameExists)
	}
	defer func() { _ = cur.Close(ctx) }()

	docs := []employeeDoc{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(err, "decode employees", store.ErrEmployeeNotFound, store.ErrUsernameExists)
	}

	employees := make([]domain.Employee, 0, len(docs))
	for i := range docs {
		employees = append(employees, *docs[i].toDomain())
	}
	return employees, nil
}

// GetByEmpID implements store.EmployeeStore.
func (s *EmployeeStore) GetByEmpID(ctx context.Context, empID int) (*domain.Employee, error) {
	var doc employeeDoc
	err := s.coll.FindOne(ctx, bson.M{"empId": empID}).Decode(&doc)
	if err != nil {
		return nil, translate(err, "get employee", store.ErrEmployeeNotFound, store.ErrUsernameExists)
	}
	return doc.toDomain(), nil
}

// GetCredentials implements store.EmployeeStore.
func (s *EmployeeStore) GetCredentials(ctx context.Context, username string) (*domain.Employee, string, error) {
	var doc employeeDoc
	err := s.coll.FindOne(ctx, bson.M{"username": strings.ToLower(username)}).Decode(&doc)
	if err != nil {
		return nil, "", translate(err, "get credentials", store.ErrEmployeeNotFound, store.ErrUsernameExists)
	}
	return doc.toDomain(), doc.PasswordHash, nil
}

// Create implements store.EmployeeStore. The empId is generated as
// max+1; a concurrent create racing for the same id trips the unique
// index and is retried with a fresh id.
func (s *EmployeeStore) Create(ctx context.Context, e *domain.Employee, passwordHash string) error {
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		empID, err := s.nextEmpID(ctx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		doc := employeeDoc{
			EmpID:        empID,
			FirstName:    e.FirstName,
			LastName:     e.LastName,
			Username:     strings.ToLower(e.Username),
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		_, err = s.coll.InsertOne(ctx, doc)
		if err == nil {
			e.EmpID = empID
			e.Username = doc.Username
			e.CreatedAt = now
			e.UpdatedAt = now
			e.Password = ""
			return nil
		}

		if !mongo.IsDuplicateKeyError(err) {
			return translate(err, "create employee", store.ErrEmployeeNotFound, store.ErrUsernameExists)
		}

		// Username collisions are permanent; empId collisions retry.
		if exists, checkErr := s.usernameExists(ctx, doc.Username); checkErr == nil && exists {
			return store.ErrUsernameExists
		}
		lastErr = fmt.Errorf("create employee: %w", err)
	}
	return lastErr
}

// Delete implements store.EmployeeStore.
func (s *EmployeeStore) Delete(ctx context.Context, empID int) (*domain.Employee, error) {
	var doc employeeDoc
	err := s.coll.FindOneAndDelete(ctx, bson.M{"empId": empID}).Decode(&doc)
	if err != nil {
		return nil, translate(err, "delete employee", store.ErrEmployeeNotFound, store.ErrUsernameExists)
	}
	return doc.toDomain(), nil
}

// nextEmpID returns one past the highest assigned id, or ErrEmpIDExhausted
// once the three digit space is used up.
func (s *EmployeeStore) nextEmpID(ctx context.Context) (int, error) {
	var doc employeeDoc
	err := s.coll.FindOne(
		ctx,
		bson.D{},
		options.FindOne().SetSort(bson.D{{Key: "empId", Value: -1}}),
	).Decode(&doc)

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return firstEmpID, nil
	case err != nil:
		return 0, translate(err, "next employee id", store.ErrEmployeeNotFound, store.ErrUsernameExists)
	case doc.EmpID >= domain.MaxEmpID:
		return 0, store.ErrEmpIDExhausted
	default:
		return doc.EmpID + 1, nil
	}
}

func (s *EmployeeStore) usernameExists(ctx context.Context, username string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
