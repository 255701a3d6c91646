package validate

import (
	"strings"
	"testing"
)

type registerInput struct {
	Name     string  `json:"name" validate:"required,min=2,max=10"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    string  `json:"phone" validate:"nullable,max=5"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Type     string  `json:"type" validate:"required,in=CREDIT_CARD,PIX"`
}

func valid() registerInput {
	return registerInput{
		Name: "Alice", Email: "alice@example.com",
		Quantity: 1, Price: 9.5, Type: "PIX",
	}
}

func TestStructValid(t *testing.T) {
	if errs := Struct(valid()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestStructErrorsAreOrderedByField(t *testing.T) {
	var in registerInput // everything required is missing
	errs := Struct(&in)

	if len(errs) != 5 {
		t.Fatalf("expected 5 errors, got %d: %v", len(errs), errs)
	}
	wantPrefix := []string{"name:", "email:", "quantity:", "price:", "type:"}
	for i, prefix := range wantPrefix {
		if !strings.HasPrefix(errs[i], prefix) {
			t.Errorf("errs[%d] = %q, want prefix %q", i, errs[i], prefix)
		}
	}
}

func TestFirstFailingRulePerField(t *testing.T) {
	in := valid()
	in.Name = "x" // fails min=2; max=10 never reported

	errs := Struct(in)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0], "at least 2") {
		t.Errorf("error = %q, want min violation", errs[0])
	}
}

func TestNullableSkipsWhenEmpty(t *testing.T) {
	in := valid()
	in.Phone = ""
	if errs := Struct(in); len(errs) != 0 {
		t.Fatalf("nullable empty field produced errors: %v", errs)
	}

	in.Phone = "123456789"
	errs := Struct(in)
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "phone:") {
		t.Fatalf("expected phone max violation, got %v", errs)
	}
}

func TestInRuleWithMultipleValues(t *testing.T) {
	in := valid()
	in.Type = "CASH"
	errs := Struct(in)
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "type:") {
		t.Fatalf("expected type violation, got %v", errs)
	}

	for _, ok := range []string{"CREDIT_CARD", "PIX"} {
		in.Type = ok
		if errs := Struct(in); len(errs) != 0 {
			t.Errorf("type %q rejected: %v", ok, errs)
		}
	}
}

func TestEmailRule(t *testing.T) {
	in := valid()
	for _, bad := range []string{"plainaddress", "@nouser.com", "user@", "user@host"} {
		in.Email = bad
		errs := Struct(in)
		if len(errs) != 1 || !strings.HasPrefix(errs[0], "email:") {
			t.Errorf("email %q: got %v", bad, errs)
		}
	}
}

func TestNumericBounds(t *testing.T) {
	in := valid()
	in.Quantity = -1
	in.Price = 0

	errs := Struct(in)
	// Price 0 trips `required` (zero value); quantity trips gte.
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}
