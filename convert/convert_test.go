package convert

import (
	"testing"

	"github.com/plainform/go-plain/schema"
)

// Shared fixture types. Employee is a declared subtype of Person and
// Manager of Employee; Go has no nominal subtyping so the relation lives
// entirely in the registry.

type Person struct {
	Name string
	Age  int
}

type Employee struct {
	Name   string
	Age    int
	Salary float64
}

type Manager struct {
	Name    string
	Age     int
	Salary  float64
	Reports []string
}

func registerPeople(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	schema.MustRegister[Person](reg, "PersonType",
		schema.WithMember("Name", "name", schema.TypeOf[string](), schema.Required()),
		schema.WithMember("Age", "age", schema.TypeOf[int]()),
		schema.WithKnownSubtype[Employee]("EmployeeType"))
	schema.MustRegister[Employee](reg, "EmployeeType",
		schema.WithMember("Name", "name", schema.TypeOf[string](), schema.Required()),
		schema.WithMember("Age", "age", schema.TypeOf[int]()),
		schema.WithMember("Salary", "salary", schema.TypeOf[float64]()),
		schema.WithKnownSubtype[Manager]("ManagerType"))
	schema.MustRegister[Manager](reg, "ManagerType",
		schema.WithMember("Name", "name", schema.TypeOf[string](), schema.Required()),
		schema.WithMember("Salary", "salary", schema.TypeOf[float64]()),
		schema.WithMember("Reports", "reports", schema.ArrayOf(schema.TypeOf[string](), 1)))
	return reg
}

// errSink collects recoverable errors for assertions.
type errSink struct {
	errs []error
}

func (s *errSink) add(err error) {
	s.errs = append(s.errs, err)
}

func (s *errSink) empty() bool { return len(s.errs) == 0 }

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *errSink) {
	t.Helper()
	sink := &errSink{}
	opts = append([]Option{
		WithRegistry(registerPeople(t)),
		WithErrorHandler(sink.add),
	}, opts...)
	return New(opts...), sink
}

func requireNoErrors(t *testing.T, sink *errSink) {
	t.Helper()
	for _, err := range sink.errs {
		t.Errorf("unexpected recoverable error: %v", err)
	}
}
