package validate

import "testing"

func validForm() VisitorForm {
	return VisitorForm{
		Name:    "Alice Doe",
		Email:   "alice@example.com",
		Phone:   "555-123-4567",
		Purpose: "Interview",
	}
}

func TestVisitor_ValidFormHasNoErrors(t *testing.T) {
	f := validForm()
	f.Phone = "555-123-4567"
	if errs := Visitor(f); errs.Any() {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestVisitor_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*VisitorForm)
		field  string
	}{
		{"empty name", func(f *VisitorForm) { f.Name = "   " }, FieldName},
		{"short name", func(f *VisitorForm) { f.Name = " A " }, FieldName},
		{"missing email", func(f *VisitorForm) { f.Email = "" }, FieldEmail},
		{"email without tld", func(f *VisitorForm) { f.Email = "alice@example" }, FieldEmail},
		{"email with space", func(f *VisitorForm) { f.Email = "al ice@example.com" }, FieldEmail},
		{"missing phone", func(f *VisitorForm) { f.Phone = "" }, FieldPhone},
		{"phone with letters", func(f *VisitorForm) { f.Phone = "12a" }, FieldPhone},
		{"phone too short", func(f *VisitorForm) { f.Phone = "123-456-789" }, FieldPhone},
		{"phone too long", func(f *VisitorForm) { f.Phone = "1234567890123456" }, FieldPhone},
		{"missing purpose", func(f *VisitorForm) { f.Purpose = "" }, FieldPurpose},
		{"unknown purpose", func(f *VisitorForm) { f.Purpose = "Sightseeing" }, FieldPurpose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Phone = "5551234567"
			tt.mutate(&f)

			errs := Visitor(f)
			if _, ok := errs[tt.field]; !ok {
				t.Fatalf("expected error on %s, got %v", tt.field, errs)
			}
			if len(errs) != 1 {
				t.Errorf("expected only %s to fail, got %v", tt.field, errs)
			}
		})
	}
}

func TestVisitor_PhoneSeparatorsStripped(t *testing.T) {
	for _, phone := range []string{"555 123 4567", "555-123-4567", "123456789012345"} {
		f := validForm()
		f.Phone = phone
		if errs := Visitor(f); errs.Any() {
			t.Errorf("phone %q: unexpected errors %v", phone, errs)
		}
	}
}

func TestVisitor_OptionalFieldsUnconstrained(t *testing.T) {
	f := validForm()
	f.Phone = "5551234567"
	f.Host = ""
	f.Message = ""
	if errs := Visitor(f); errs.Any() {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestErrors_ClearRemovesOnlyEditedField(t *testing.T) {
	errs := Visitor(VisitorForm{})
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors on empty form, got %v", errs)
	}

	errs.Clear(FieldPhone)
	if _, ok := errs[FieldPhone]; ok {
		t.Error("phone error should be cleared")
	}
	if len(errs) != 3 {
		t.Errorf("expected 3 remaining errors, got %v", errs)
	}

	want := []string{FieldEmail, FieldName, FieldPurpose}
	got := errs.Fields()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Fields() = %v, want %v", got, want)
		}
	}
}

func TestLogin(t *testing.T) {
	if errs := Login("admin@demo.com", "admin123"); errs.Any() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if errs := Login("admin@demo.com", "12345"); errs[FieldPassword] == "" {
		t.Errorf("expected short password error, got %v", errs)
	}
	if errs := Login("admin@demo.com", ""); errs[FieldPassword] != "Password is required" {
		t.Errorf("expected required password error, got %v", errs)
	}
	if errs := Login("not-an-email", "admin123"); errs[FieldEmail] == "" {
		t.Errorf("expected email error, got %v", errs)
	}
}

func TestVisitor_Messages(t *testing.T) {
	tests := []struct {
		form  VisitorForm
		field string
		want  string
	}{
		{VisitorForm{}, FieldName, "Name is required"},
		{VisitorForm{Name: "A"}, FieldName, "Name must be at least 2 characters"},
		{VisitorForm{}, FieldEmail, "Email is required"},
		{VisitorForm{Email: "alice@"}, FieldEmail, "Please enter a valid email address"},
		{VisitorForm{}, FieldPhone, "Phone number is required"},
		{VisitorForm{Phone: "12a"}, FieldPhone, "Please enter a valid phone number (10-15 digits)"},
		{VisitorForm{}, FieldPurpose, "Please select a purpose of visit"},
		{VisitorForm{Purpose: "Sightseeing"}, FieldPurpose, "Please select a valid purpose of visit"},
	}

	for _, tt := range tests {
		if got := Visitor(tt.form)[tt.field]; got != tt.want {
			t.Errorf("%+v: %s = %q, want %q", tt.form, tt.field, got, tt.want)
		}
	}
}

func TestVisitor_TrimsBeforeValidating(t *testing.T) {
	f := VisitorForm{
		Name:    "  Al  ",
		Email:   " alice@example.com ",
		Phone:   " 555 123 4567 ",
		Purpose: " Personal Visit ",
	}
	if errs := Visitor(f); errs.Any() {
		t.Fatalf("unexpected errors: %v", errs)
	}

	got := f.Trimmed()
	if got.Name != "Al" || got.Email != "alice@example.com" || got.Purpose != "Personal Visit" {
		t.Errorf("Trimmed() = %+v", got)
	}
}

func TestVisitor_NameCountsCharactersNotBytes(t *testing.T) {
	f := validForm()
	f.Name = "Łó"
	if errs := Visitor(f); errs.Any() {
		t.Fatalf("two-letter name rejected: %v", errs)
	}
}

func TestLogin_Messages(t *testing.T) {
	errs := Login("", "")
	if errs[FieldEmail] != "Email is required" || errs[FieldPassword] != "Password is required" {
		t.Errorf("errs = %v", errs)
	}

	errs = Login(" admin@demo.com ", "12345")
	if _, ok := errs[FieldEmail]; ok {
		t.Errorf("email should be trimmed: %v", errs)
	}
	if errs[FieldPassword] != "Password must be at least 6 characters" {
		t.Errorf("errs = %v", errs)
	}
}
