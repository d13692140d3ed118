package domain

import "time"

// Employee is a staff member who may authenticate against the API.
// EmpID is a three digit number generated by the store at creation time,
// never supplied by clients. The password is only populated transiently
// during registration; stores persist the bcrypt hash instead.
type Employee struct {
	EmpID     int       `json:"empId"     bson:"empId"`
	FirstName string    `json:"firstName" bson:"firstName" validate:"required,personname"`
	LastName  string    `json:"lastName"  bson:"lastName"  validate:"required,personname"`
	Username  string    `json:"username"  bson:"username"  validate:"required,username"`
	Password  string    `json:"-"         bson:"-"         validate:"required,password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// MaxEmpID bounds the generated employee id space; generation past this
// is an infrastructure failure, not a validation error.
const MaxEmpID = 999

// Validate checks the employee against its field rules. The plaintext
// password is validated here; hashing is the service layer's job.
func (e *Employee) Validate() []FieldError {
	return Validate(e)
}
