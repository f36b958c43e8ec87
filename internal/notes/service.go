package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yuin/goldmark"
)

type Service struct {
	store    Store
	validate *validator.Validate
	md       goldmark.Markdown
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock overrides the clock used for createdAt
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation errors
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	s := &Service{
		store:    store,
		validate: v,
		md:       goldmark.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates input and stores a new note stamped with the server clock
func (s *Service) Create(ctx context.Context, input CreateNoteInput) (*CreateNoteResult, error) {
	const op = "create note"

	if s.store == nil {
		return nil, &Error{Kind: KindDatabaseUnavailable, Op: op, Err: ErrDatabaseUnavailable}
	}

	if err := s.Validate(input); err != nil {
		return nil, &Error{Kind: KindValidation, Op: op, Err: err}
	}

	// BSON datetimes keep milliseconds only
	note := &Note{
		Title:       input.Title,
		Description: input.Description,
		Mood:        input.Mood,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}

	id, err := s.store.Insert(ctx, note)
	if err != nil {
		return nil, storageError(op, KindCreation, err)
	}

	return &CreateNoteResult{ID: id, Message: "Note created"}, nil
}

// List returns every stored note
func (s *Service) List(ctx context.Context) ([]*Note, error) {
	const op = "list notes"

	if s.store == nil {
		return nil, &Error{Kind: KindDatabaseUnavailable, Op: op, Err: ErrDatabaseUnavailable}
	}

	notes, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, storageError(op, KindRetrieval, err)
	}
	if notes == nil {
		notes = []*Note{}
	}
	return notes, nil
}

// Validate reports every missing required field of input
func (s *Service) Validate(input CreateNoteInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
}

// RenderMarkdown converts a note description to HTML
func (s *Service) RenderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return html.EscapeString(content)
	}
	return buf.String()
}
