package validation

// Rule sets per endpoint. Each returns every failed field, or an empty
// slice when the body passes.

func Register(name, email, password string) []FieldError {
	v := New()
	v.Field("name", name).
		Required("Name is required").
		Length(2, 50, "Name must be between 2 and 50 characters")
	v.Field("email", email).
		Required("Email is required").
		Email("Please provide a valid email address")
	v.Field("password", password).
		Required("Password is required").
		MinLength(6, "Password must be at least 6 characters long")
	return v.Errors()
}

func Login(email, password string) []FieldError {
	v := New()
	v.Field("email", email).
		Required("Email is required").
		Email("Please provide a valid email address")
	v.Field("password", password).
		Required("Password is required")
	return v.Errors()
}

// Book covers both create and update; updates re-run the same checks
// against the new values.
func Book(title, author, genre, publicationDate string, pageCount *int) []FieldError {
	v := New()
	v.Field("title", title).
		Required("Title is required").
		Length(2, 200, "Title must be between 2 and 200 characters")
	v.Field("author", author).
		Required("Author is required").
		Length(2, 100, "Author name must be between 2 and 100 characters")
	v.Field("genre", genre).
		Required("Genre is required")
	v.Field("publicationDate", publicationDate).
		Required("Publication date is required").
		Date("Publication date must be a valid date")
	v.Check("pageCount", pageCount == nil || *pageCount >= 1, "Page count must be at least 1")
	return v.Errors()
}

func Profile(name, bio *string) []FieldError {
	v := New()
	v.Optional("name", name).
		Length(2, 50, "Name must be between 2 and 50 characters")
	_ = bio // free text, no constraint
	return v.Errors()
}

func Password(currentPassword, newPassword string) []FieldError {
	v := New()
	v.Field("currentPassword", currentPassword).
		Required("Current password is required")
	v.Field("newPassword", newPassword).
		Required("New password is required").
		MinLength(6, "New password must be at least 6 characters long")
	return v.Errors()
}
