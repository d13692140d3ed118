package v2

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grocerhub/grocer-api/internal/api/middleware"
	"github.com/grocerhub/grocer-api/internal/api/shared"
	"github.com/grocerhub/grocer-api/internal/domain"
	"github.com/grocerhub/grocer-api/internal/httperr"
	"github.com/grocerhub/grocer-api/internal/service/auth"
	"github.com/grocerhub/grocer-api/internal/store"
)

const empIDParam = "/{empId:[0-9]{3}}"

// EmployeeHandler serves the v2 employees resource, including login.
type EmployeeHandler struct {
	employees store.EmployeeStore
	jwt       auth.JWTService
	hasher    auth.PasswordHasher
	errs      *shared.ErrorHandler
	auth      *middleware.AuthMiddleware
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(
	employees store.EmployeeStore,
	jwt auth.JWTService,
	hasher auth.PasswordHasher,
	errs *shared.ErrorHandler,
	authmw *middleware.AuthMiddleware,
) *EmployeeHandler {
	return &EmployeeHandler{
		employees: employees,
		jwt:       jwt,
		hasher:    hasher,
		errs:      errs,
		auth:      authmw,
	}
}

// Routes mounts the employee endpoints relative to the resource root.
// Login is the only public endpoint; everything else needs a token.
func (h *EmployeeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(h.errs.NotFoundHandler())
	r.MethodNotAllowed(h.errs.MethodNotAllowedHandler())

	r.Post("/login", h.errs.Wrap(h.Login))

	r.Group(func(r chi.Router) {
		r.Use(h.auth.Authenticate)
		r.Get("/", h.errs.Wrap(h.List))
		r.Post("/", h.errs.Wrap(h.Create))
		r.Get(empIDParam, h.errs.Wrap(h.Get))
		r.Delete(empIDParam, h.errs.Wrap(h.Delete))
	})
	return r
}

// List returns all employees. Password hashes never leave the store
// layer, so the listing is safe to return as-is.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) error {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		Send(employees)
	return nil
}

// Get returns a single employee by empId.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) error {
	empID, err := strconv.Atoi(chi.URLParam(r, "empId"))
	if err != nil {
		return httperr.NotFound("").WithCode("RESOURCE_NOT_FOUND")
	}

	employee, err := h.employees.GetByEmpID(r.Context(), empID)
	if err != nil {
		if store.IsNotFound(err) {
			return employeeNotFound(r, empID)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_RETRIEVED").
		WithDocsURL(docs(r, "employees", "retrieve-an-employee")).
		Send(employee)
	return nil
}

// registerRequest is the wire shape for employee registration; the
// plaintext password rides in and is dropped after hashing.
type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// Create registers a new employee. The empId is generated server-side.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) error {
	docsURL := docs(r, "employees", "register-a-new-employee")

	var req registerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return err
	}

	employee := domain.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
	}

	if fieldErrs := employee.Validate(); fieldErrs != nil {
		return httperr.UnprocessableEntity("Employee validation failed.").
			WithCode("VALIDATION_ERROR").
			WithDetails(fieldErrs).
			WithDocsURL(docsURL)
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		return httperr.Internal("Employee could not be saved.").
			WithCode("RESOURCE_NOT_CREATED").
			WithDetails("Please try again.").
			WithDocsURL(docsURL).
			Wrap(err)
	}

	if err := h.employees.Create(r.Context(), &employee, hash); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			return httperr.Conflict("Employee with username already exists.").
				WithCode("RESOURCE_ALREADY_EXISTS").
				WithDetails("Please choose a different username and try again.").
				WithDocsURL(docsURL)
		case errors.Is(err, store.ErrEmpIDExhausted):
			return httperr.Internal("Employee could not be created.").
				WithCode("RESOURCE_NOT_CREATED").
				WithDetails("No employee ids are available.").
				WithDocsURL(docsURL).
				Wrap(err)
		default:
			return err
		}
	}

	shared.Success(w, r).
		WithStatusCode(http.StatusCreated).
		WithCode("RESOURCE_CREATED").
		WithDocsURL(docsURL).
		WithLocation(shared.OriginalPath(r) + "/" + strconv.Itoa(employee.EmpID)).
		Send(map[string]any{
			"message":  "The employee has been successfully registered.",
			"employee": employee,
		})
	return nil
}

// loginRequest is the wire shape for the login endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and issues an access token. A missing user
// and a wrong password are indistinguishable to the client.
func (h *EmployeeHandler) Login(w http.ResponseWriter, r *http.Request) error {
	docsURL := docs(r, "employees", "login")

	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return httperr.UnprocessableEntity("Username and password are required.").
			WithCode("VALIDATION_ERROR").
			WithDetails("Please provide both username and password.").
			WithDocsURL(docsURL)
	}

	employee, hash, err := h.employees.GetCredentials(r.Context(), req.Username)
	if err != nil {
		if store.IsNotFound(err) {
			return invalidCredentials(docsURL, err)
		}
		return err
	}

	if err := h.hasher.Compare(hash, req.Password); err != nil {
		return invalidCredentials(docsURL, err)
	}

	token, err := h.jwt.GenerateToken(r.Context(), employee.EmpID, employee.Username)
	if err != nil {
		return httperr.Internal("Login failed.").
			WithDetails("Please try again.").
			WithDocsURL(docsURL).
			Wrap(err)
	}

	shared.Success(w, r).
		WithCode("LOGIN_SUCCESSFUL").
		WithDocsURL(docsURL).
		Send(map[string]any{
			"message":  "Login successful.",
			"token":    token,
			"employee": employee,
		})
	return nil
}

// Delete removes an employee by empId.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	empID, err := strconv.Atoi(chi.URLParam(r, "empId"))
	if err != nil {
		return httperr.NotFound("").WithCode("RESOURCE_NOT_FOUND")
	}

	deleted, err := h.employees.Delete(r.Context(), empID)
	if err != nil {
		if store.IsNotFound(err) {
			return employeeNotFound(r, empID)
		}
		return err
	}

	shared.Success(w, r).
		WithCode("RESOURCE_DELETED").
		WithDocsURL(docs(r, "employees", "remove-an-employee")).
		Send(map[string]any{
			"message":  "The employee has been successfully deleted.",
			"employee": deleted,
		})
	return nil
}

func employeeNotFound(r *http.Request, empID int) error {
	return httperr.NotFound("Employee with id %d not found.", empID).
		WithCode("RESOURCE_NOT_FOUND").
		WithDetails("Please check the employee id and try again.").
		WithDocsURL(docs(r, "employees", "retrieve-an-employee"))
}

func invalidCredentials(docsURL string, cause error) error {
	return httperr.Unauthorized("Invalid username or password.").
		WithCode("INVALID_CREDENTIALS").
		WithDetails("Please check your credentials and try again.").
		WithDocsURL(docsURL).
		Wrap(cause)
}
