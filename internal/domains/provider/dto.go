package provider

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxImagesPerProvider caps a single multipart upload.
const MaxImagesPerProvider = 10

// CreateServiceProviderRequest arrives as the "data" form field of a
// multipart request, JSON-encoded, alongside the image files.
type CreateServiceProviderRequest struct {
	Name          string         `json:"name"`
	Bio           string         `json:"bio"`
	WorkingDays   []string       `json:"workingDays"`
	WorkingHours  []string       `json:"workingHours"`
	ClosingHours  []string       `json:"closingHours"`
	PhoneContacts []PhoneContact `json:"phoneContacts"`
	LocationLinks []string       `json:"locationLinks"`
	Offers        []Offer        `json:"offers"`
}

func (r *CreateServiceProviderRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Bio, validation.Required, validation.Length(1, 2000)),
	); err != nil {
		return err
	}
	return validatePhoneContacts(r.PhoneContacts)
}

// UpdateServiceProviderRequest is a partial patch. Pointer fields
// distinguish "leave unchanged" from "set to empty". DeletedImageIds
// names existing image public ids to remove from the record.
type UpdateServiceProviderRequest struct {
	Name            *string         `json:"name"`
	Bio             *string         `json:"bio"`
	WorkingDays     *[]string       `json:"workingDays"`
	WorkingHours    *[]string       `json:"workingHours"`
	ClosingHours    *[]string       `json:"closingHours"`
	PhoneContacts   *[]PhoneContact `json:"phoneContacts"`
	LocationLinks   *[]string       `json:"locationLinks"`
	Offers          *[]Offer        `json:"offers"`
	DeletedImageIds []string        `json:"deletedImageIds"`
}

func (r *UpdateServiceProviderRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Bio, validation.NilOrNotEmpty, validation.Length(1, 2000)),
	); err != nil {
		return err
	}
	if r.PhoneContacts != nil {
		return validatePhoneContacts(*r.PhoneContacts)
	}
	return nil
}

// Empty reports whether the patch changes nothing at all.
func (r *UpdateServiceProviderRequest) Empty() bool {
	return r.Name == nil && r.Bio == nil &&
		r.WorkingDays == nil && r.WorkingHours == nil && r.ClosingHours == nil &&
		r.PhoneContacts == nil && r.LocationLinks == nil && r.Offers == nil &&
		len(r.DeletedImageIds) == 0
}

func validatePhoneContacts(contacts []PhoneContact) error {
	for _, c := range contacts {
		if strings.TrimSpace(c.PhoneNumber) == "" {
			return validation.NewError("validation_phone_required", "phoneNumber is required for each phone contact")
		}
	}
	return nil
}
