package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

type orderDraftRules struct {
	CustomerName  string `field:"customer_name" validate:"required"`
	CustomerEmail string `field:"customer_email" validate:"required,email"`
	WebsiteType   string `field:"website_type" validate:"required"`
	Requirements  string `field:"requirements" validate:"required"`
}

type announcementRules struct {
	UserID  string `field:"user_id" validate:"required"`
	Title   string `field:"title" validate:"required,max=200"`
	Message string `field:"message" validate:"required"`
}

// normalizeDraft trims descriptive fields and checks that all of them are present.
func normalizeDraft(draft model.OrderDraft) (model.OrderDraft, error) {
	draft.CustomerName = strings.TrimSpace(draft.CustomerName)
	draft.CustomerEmail = strings.TrimSpace(draft.CustomerEmail)
	draft.WebsiteType = strings.TrimSpace(draft.WebsiteType)
	draft.Requirements = strings.TrimSpace(draft.Requirements)

	err := validate.Struct(orderDraftRules{
		CustomerName:  draft.CustomerName,
		CustomerEmail: draft.CustomerEmail,
		WebsiteType:   draft.WebsiteType,
		Requirements:  draft.Requirements,
	})
	return draft, asValidationError(err)
}

// normalizeDetails trims present fields. A present field must not be blank.
func normalizeDetails(update model.DetailsUpdate) (model.DetailsUpdate, error) {
	if update.IsEmpty() {
		return update, fmt.Errorf("%w: no fields to update", domainErrors.ErrValidation)
	}

	var invalid []string
	trim := func(name string, v *string) *string {
		if v == nil {
			return nil
		}
		s := strings.TrimSpace(*v)
		if s == "" {
			invalid = append(invalid, name+" (required)")
		}
		return &s
	}
	out := model.DetailsUpdate{
		CustomerName:  trim("customer_name", update.CustomerName),
		CustomerEmail: trim("customer_email", update.CustomerEmail),
		WebsiteType:   trim("website_type", update.WebsiteType),
		Requirements:  trim("requirements", update.Requirements),
	}
	if out.CustomerEmail != nil && *out.CustomerEmail != "" {
		if err := validate.Var(*out.CustomerEmail, "email"); err != nil {
			invalid = append(invalid, "customer_email (email)")
		}
	}
	if len(invalid) > 0 {
		return update, fmt.Errorf("%w: invalid %s", domainErrors.ErrValidation, strings.Join(invalid, ", "))
	}
	return out, nil
}

func validateAnnouncement(draft model.NotificationDraft) error {
	if err := validate.Struct(announcementRules{
		UserID:  strings.TrimSpace(draft.UserID),
		Title:   strings.TrimSpace(draft.Title),
		Message: strings.TrimSpace(draft.Message),
	}); err != nil {
		return asValidationError(err)
	}
	if !draft.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domainErrors.ErrValidation, draft.Category)
	}
	return nil
}

func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domainErrors.ErrValidation, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: invalid %s", domainErrors.ErrValidation, strings.Join(fields, ", "))
}
