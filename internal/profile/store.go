package profile

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned for lookups of unknown emails.
var ErrUserNotFound = errors.New("user not found")

// Store persists users. The gorm handle is injected; the store owns no
// connection lifecycle.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByEmail fetches a user by unique email.
func (s *Store) FindByEmail(email string) (*User, error) {
	var user User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// SaveEnrichment creates or updates the user row for an enrichment
// result, keyed by email. The stored profile omits the raw upstream
// payload.
func (s *Store) SaveEnrichment(email, linkedinURL string, p *CanonicalProfile) (*User, error) {
	stored := *p
	stored.RawData = nil

	existing, err := s.FindByEmail(email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.LinkedInURL = linkedinURL
		existing.Profession = p.Profession
		existing.Interests = pq.StringArray(p.Interests)
		existing.Inferred = &stored
		if err := s.db.Save(existing).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return existing, nil
	}

	user := &User{
		Email:       email,
		LinkedInURL: linkedinURL,
		Profession:  p.Profession,
		Interests:   pq.StringArray(p.Interests),
		Inferred:    &stored,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Confirmation carries the user-reviewed profile fields from the
// onboarding flow. Nil pointers mean "leave unchanged".
type Confirmation struct {
	ZipCode    *string
	HasCar     *bool
	HasKids    *bool
	Profession *string
	Interests  []string
}

// SaveConfirmation applies user-confirmed fields to the user row,
// creating it when the email is new. Only supplied fields are written.
func (s *Store) SaveConfirmation(email string, c Confirmation) (*User, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		user = &User{Email: email}
	}

	if c.ZipCode != nil {
		user.ZipCode = *c.ZipCode
	}
	if c.HasCar != nil {
		user.HasCar = c.HasCar
	}
	if c.HasKids != nil {
		user.HasKids = c.HasKids
	}
	if c.Profession != nil {
		user.Profession = *c.Profession
	}
	if len(c.Interests) > 0 {
		user.Interests = pq.StringArray(c.Interests)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}
